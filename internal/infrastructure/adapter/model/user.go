package model

import (
	"time"
)

// User represents the database model for staff accounts
type User struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	Name             string    `gorm:"not null;size:255"`
	Email            string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash     string    `gorm:"not null;size:255"`
	Role             string    `gorm:"not null;size:50;index"`
	Barcode          string    `gorm:"uniqueIndex;not null;size:64"`
	Apples           int64     `gorm:"not null;default:0"`
	SessionsAttended int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
