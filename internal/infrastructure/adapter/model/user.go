package model

import (
	"time"
)

// User represents the database model for network members. The sponsor
// edge is stored redundantly as both an id and a username; tree joins
// use the username, matching how signups record their sponsor.
type User struct {
	ID          uint64    `gorm:"primaryKey"`
	Username    string    `gorm:"uniqueIndex;not null;size:100"`
	SponsorID   *uint64   `gorm:"index"`
	SponsorName string    `gorm:"index;size:100"`
	UplineID    *uint64   `gorm:"index"`
	Position    string    `gorm:"size:10"`
	LeftCount   int       `gorm:"not null;default:0"`
	RightCount  int       `gorm:"not null;default:0"`
	PairsToday  int       `gorm:"not null;default:0"`
	Role        string    `gorm:"not null;size:20;default:member"`
	Status      string    `gorm:"not null;size:20;default:active"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
