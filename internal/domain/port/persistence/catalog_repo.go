package persistence

import (
	"context"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
)

// ProductRepository reads the affiliate-store catalog
type ProductRepository interface {
	// GetByID retrieves a product regardless of status
	//
	// Possible errors:
	// - ErrProductUnavailable: If the product doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Product, error)
}

// PackageRepository reads admin-managed packages and their five-level
// leadership/mentor schedules
type PackageRepository interface {
	// GetByID retrieves a package
	//
	// Possible errors:
	// - ErrPackageNotFound: If the package doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Package, error)

	// ListSchedule returns a package's schedule entries of the given
	// kind ordered by level. Missing levels simply yield fewer rows.
	ListSchedule(ctx context.Context, packageID uint64, kind entity.ScheduleKind) ([]entity.ScheduleEntry, error)
}

// OrderRepository manages deferred-payment orders
type OrderRepository interface {
	// Create persists a new pending order
	Create(ctx context.Context, order *entity.PendingOrder) error

	// GetByID retrieves one order
	//
	// Possible errors:
	// - ErrOrderNotFound: If the order doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.PendingOrder, error)

	// ListPendingByUser returns a user's pending_payment orders oldest
	// first. Inside a transaction the rows come back locked so a
	// concurrent completion cannot settle the same orders twice.
	ListPendingByUser(ctx context.Context, userID uint64) ([]entity.PendingOrder, error)

	// Update persists status changes of an existing order
	//
	// Possible errors:
	// - ErrOrderNotFound: If the order vanished
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, order *entity.PendingOrder) error
}
