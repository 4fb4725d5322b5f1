package model

import (
	"time"
)

// Wallet represents the database model for member wallets. Balance is
// stored in cents so arithmetic stays exact.
type Wallet struct {
	UserID    uint64    `gorm:"primaryKey"`
	Balance   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Wallet
func (Wallet) TableName() string {
	return "wallets"
}
