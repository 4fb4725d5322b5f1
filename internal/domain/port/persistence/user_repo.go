package persistence

import (
	"context"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
)

// UserRepository defines the user-graph read and write surface.
// Tree building and ancestry walks only need point lookups plus the
// ordered full scan; there is deliberately no username-rename API since
// sponsor edges are matched by name.
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by its unique username
	//
	// Possible errors:
	// - ErrUserNotFound: If no user carries the username
	// - ErrDatabaseConnection: If database connection fails
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// ListAll returns every user ordered by id, for in-memory tree building
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListAll(ctx context.Context) ([]entity.User, error)

	// ListBySponsorNames returns all users whose sponsor_name is one of
	// the given usernames. Used by the level-by-level indirects walk.
	// An empty result is not an error.
	ListBySponsorNames(ctx context.Context, usernames []string) ([]entity.User, error)

	// Create persists a new user
	//
	// Possible errors:
	// - ErrDuplicateEntry: If the id or username is already taken
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error
}
