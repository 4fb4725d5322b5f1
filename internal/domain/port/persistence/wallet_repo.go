package persistence

import (
	"context"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
)

// WalletRepository manages wallet rows. Credit and Debit are the only
// balance mutations; both run against the current row state under a
// row lock, so a caller inside a transaction cannot overdraw against a
// stale balance check.
type WalletRepository interface {
	// GetByUserID retrieves a user's wallet
	//
	// Possible errors:
	// - ErrWalletNotFound: If the user has no wallet row
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error)

	// Create persists a new wallet row
	//
	// Possible errors:
	// - ErrDuplicateEntry: If the user already has a wallet
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, wallet *entity.Wallet) error

	// Credit adds amountInCents to the user's wallet, creating the row
	// with zero balance first when absent. The create-if-absent is
	// upsert-backed: two racing credits to a new wallet must both land.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Credit(ctx context.Context, userID uint64, amountInCents int64) (*entity.Wallet, error)

	// Debit subtracts amountInCents after re-checking the balance under
	// a FOR UPDATE row lock.
	//
	// Possible errors:
	// - ErrWalletNotFound: If the user has no wallet row
	// - ErrInsufficientBalance: If the locked balance cannot cover it
	// - ErrDatabaseConnection: If database connection fails
	Debit(ctx context.Context, userID uint64, amountInCents int64) (*entity.Wallet, error)
}
