package model

import (
	"time"
)

// LedgerEntry represents the database model for wallet ledger rows.
// Reference carries the posting's idempotency key; the composite index
// backs the per-user, per-type sum and range queries the reports run.
type LedgerEntry struct {
	ID        uint64    `gorm:"primaryKey"`
	Reference string    `gorm:"uniqueIndex;not null;size:64"`
	UserID    uint64    `gorm:"not null;index:idx_ledger_user_type_time,priority:1"`
	Type      string    `gorm:"not null;size:32;index:idx_ledger_user_type_time,priority:2"`
	Amount    int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_ledger_user_type_time,priority:3"`
}

// TableName specifies the table name for LedgerEntry
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
