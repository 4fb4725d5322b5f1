package entity

import (
	"time"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// Position is a user's slot under its binary-tree parent
type Position string

// Binary placement slots
const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
	PositionNone  Position = ""
)

// Role distinguishes members from back-office admins
type Role string

// Roles
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Status marks whether a member participates in bonus computation
type Status string

// Statuses
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is a member of the network. It carries two independent sets of
// edges over the same node set: the sponsorship edge (SponsorID /
// SponsorName, who referred this user) and the binary placement edge
// (UplineID / Position). A user's binary parent need not be its sponsor.
type User struct {
	ID          uint64
	Username    string
	SponsorID   *uint64
	SponsorName string // matched by username string equality, not by id
	UplineID    *uint64
	Position    Position
	LeftCount   int
	RightCount  int
	PairsToday  int
	Role        Role
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the structural invariants of a user record. An upline
// equal to the user's own id is rejected outright; deeper cycles are
// caught by the walkers' visited sets.
func (u User) Validate() error {
	if u.ID == 0 {
		return errs.ErrInvalidUserID
	}
	if u.Username == "" {
		return errs.ErrInvalidUsername
	}
	if u.UplineID != nil && *u.UplineID == u.ID {
		return errs.ErrSelfReference
	}
	if u.SponsorID != nil && *u.SponsorID == u.ID {
		return errs.ErrSelfReference
	}
	if u.Position != PositionNone && u.Position != PositionLeft && u.Position != PositionRight {
		return errs.ErrInvalidPosition
	}
	return nil
}

// IsActive reports whether the member participates in bonus computation
func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// HasUpline reports whether the user is attached in the binary tree
func (u User) HasUpline() bool {
	return u.UplineID != nil
}
