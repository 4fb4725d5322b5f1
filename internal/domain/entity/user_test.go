package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

func TestUserValidate(t *testing.T) {
	uplineID := uint64(1)

	t.Run("accepts a well formed member", func(t *testing.T) {
		u := User{
			ID:       2,
			Username: "alice",
			UplineID: &uplineID,
			Position: PositionLeft,
			Role:     RoleMember,
			Status:   StatusActive,
		}
		assert.NoError(t, u.Validate())
	})

	t.Run("accepts a free root without upline", func(t *testing.T) {
		u := User{ID: 1, Username: "root"}
		assert.NoError(t, u.Validate())
	})

	t.Run("rejects zero id", func(t *testing.T) {
		u := User{Username: "alice"}
		assert.ErrorIs(t, u.Validate(), errs.ErrInvalidUserID)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		u := User{ID: 2}
		assert.ErrorIs(t, u.Validate(), errs.ErrInvalidUsername)
	})

	t.Run("rejects a self referential upline", func(t *testing.T) {
		self := uint64(2)
		u := User{ID: 2, Username: "alice", UplineID: &self}
		assert.ErrorIs(t, u.Validate(), errs.ErrSelfReference)
	})

	t.Run("rejects a self referential sponsor", func(t *testing.T) {
		self := uint64(2)
		u := User{ID: 2, Username: "alice", SponsorID: &self}
		assert.ErrorIs(t, u.Validate(), errs.ErrSelfReference)
	})

	t.Run("rejects an unknown position", func(t *testing.T) {
		u := User{ID: 2, Username: "alice", Position: Position("middle")}
		assert.ErrorIs(t, u.Validate(), errs.ErrInvalidPosition)
	})
}

func TestUserHelpers(t *testing.T) {
	uplineID := uint64(1)

	assert.True(t, User{Status: StatusActive}.IsActive())
	assert.False(t, User{Status: StatusInactive}.IsActive())
	assert.True(t, User{UplineID: &uplineID}.HasUpline())
	assert.False(t, User{}.HasUpline())
}
