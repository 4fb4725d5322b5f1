package model

import (
	"time"
)

// Package represents the database model for membership packages
type Package struct {
	ID           uint64    `gorm:"primaryKey"`
	Name         string    `gorm:"uniqueIndex;not null;size:100"`
	Price        int64     `gorm:"not null"`
	PV           int       `gorm:"not null;default:0"`
	DailyMax     int       `gorm:"not null;default:0"`
	PairRate     int       `gorm:"not null;default:0"`
	ReferralRate int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Package
func (Package) TableName() string {
	return "packages"
}

// ScheduleEntry represents the database model for per-package bonus
// schedules. A package has at most one row per kind and level.
type ScheduleEntry struct {
	ID          uint64 `gorm:"primaryKey"`
	PackageID   uint64 `gorm:"not null;uniqueIndex:idx_schedule_pkg_kind_level,priority:1"`
	Kind        string `gorm:"not null;size:20;uniqueIndex:idx_schedule_pkg_kind_level,priority:2"`
	Level       int    `gorm:"not null;uniqueIndex:idx_schedule_pkg_kind_level,priority:3"`
	PVTRequired int    `gorm:"not null;default:0"`
	GVTRequired int    `gorm:"not null;default:0"`
	Rate        int    `gorm:"not null;default:0"`
}

// TableName specifies the table name for ScheduleEntry
func (ScheduleEntry) TableName() string {
	return "schedule_entries"
}

// Product represents the database model for store products
type Product struct {
	ID            uint64    `gorm:"primaryKey"`
	Name          string    `gorm:"not null;size:150"`
	Price         int64     `gorm:"not null"`
	AffiliateRate int       `gorm:"not null;default:0"`
	Status        string    `gorm:"not null;size:20;default:active"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
