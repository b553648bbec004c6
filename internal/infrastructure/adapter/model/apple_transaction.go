package model

import (
	"time"
)

// AppleTransaction represents the database model for the balance audit trail.
// Exactly one of UserID and StudentID is set depending on who was credited.
type AppleTransaction struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	UserID      *uint64 `gorm:"index"`
	StudentID   *uint64 `gorm:"index"`
	AdminID     uint64  `gorm:"not null;index"`
	ApplesAdded int64   `gorm:"not null"`
	Reason      string  `gorm:"not null;size:100"`
	Reference   string  `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null"`

	// Define relationships
	User    *User    `gorm:"foreignKey:UserID;references:ID"`
	Student *Student `gorm:"foreignKey:StudentID;references:ID"`
}

// TableName specifies the table name for AppleTransaction
func (AppleTransaction) TableName() string {
	return "apple_transactions"
}
