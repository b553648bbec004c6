package model

import (
	"time"
)

// Student represents the database model for students
type Student struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null;size:255"`
	Barcode   string    `gorm:"uniqueIndex;not null;size:64"`
	Apples    int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}
