package persistence

import (
	"context"
	"time"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
)

// LedgerRepository is the append-only wallet ledger. Reads are the
// aggregate queries the commission engine needs; all of them degrade to
// zero/empty on no match and only fail on connectivity errors.
type LedgerRepository interface {
	// Create appends one immutable ledger row
	//
	// Possible errors:
	// - ErrDuplicateEntry: If the reference was already posted
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// SumByType returns the signed sum of a user's rows of the given
	// type, 0 when there are none.
	SumByType(ctx context.Context, userID uint64, entryType entity.EntryType) (int64, error)

	// SumByTypeSince is SumByType restricted to rows with
	// created_at >= since.
	SumByTypeSince(ctx context.Context, userID uint64, entryType entity.EntryType, since time.Time) (int64, error)

	// FirstEntryTime returns the minimum created_at among a user's rows
	// of the given type, or nil when the user has none. The nil case is
	// how a never-paired descendant yields zero attribution.
	FirstEntryTime(ctx context.Context, userID uint64, entryType entity.EntryType) (*time.Time, error)

	// ListByType returns a user's rows of the given type, newest first,
	// capped at limit.
	ListByType(ctx context.Context, userID uint64, entryType entity.EntryType, limit int) ([]entity.LedgerEntry, error)

	// ListRecent returns a user's most recent rows of any type, newest
	// first, capped at limit.
	ListRecent(ctx context.Context, userID uint64, limit int) ([]entity.LedgerEntry, error)

	// FindPurchaseAround returns the debit row of the given type from a
	// user other than excludeUserID whose created_at lies within the
	// window around the anchor time, nearest first; nil when none
	// matches. This backs the heuristic affiliate-sale correlation.
	FindPurchaseAround(ctx context.Context, entryType entity.EntryType, anchor time.Time, window time.Duration, excludeUserID uint64) (*entity.LedgerEntry, error)
}
