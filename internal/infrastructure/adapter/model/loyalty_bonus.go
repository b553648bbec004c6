package model

import (
	"time"
)

// LoyaltyBonus represents the database model for milestone bonus records.
// The composite unique index makes each bonus type a one-time credit per
// user, which is what keeps bonus accrual idempotent under concurrency.
type LoyaltyBonus struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_user_bonus_type"`
	BonusType   string    `gorm:"not null;size:50;uniqueIndex:idx_user_bonus_type"`
	BonusApples int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for LoyaltyBonus
func (LoyaltyBonus) TableName() string {
	return "loyalty_history"
}
