package model

import (
	"time"
)

// PendingOrder represents the database model for deferred store orders.
// UnitPrice is frozen at order time so later catalog edits cannot change
// what settlement charges.
type PendingOrder struct {
	ID          uint64    `gorm:"primaryKey"`
	UserID      uint64    `gorm:"not null;index:idx_orders_user_status,priority:1"`
	ProductID   uint64    `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
	Total       int64     `gorm:"not null"`
	AffiliateID *uint64   `gorm:"index"`
	Status      string    `gorm:"not null;size:20;default:pending;index:idx_orders_user_status,priority:2"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for PendingOrder
func (PendingOrder) TableName() string {
	return "pending_orders"
}
