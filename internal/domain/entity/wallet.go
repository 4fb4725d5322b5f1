package entity

import (
	"time"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// Wallet holds a member's authoritative current balance. The balance
// must always equal the sum of the member's ledger entries; the two are
// only ever written together inside one transaction.
type Wallet struct {
	UserID    uint64
	balance   int64 // cents
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWallet creates a wallet with the given starting balance in cents
func NewWallet(userID uint64, balanceInCents int64, now time.Time) (*Wallet, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if balanceInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}
	return &Wallet{
		UserID:    userID,
		balance:   balanceInCents,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in cents
func (w *Wallet) Balance() int64 {
	return w.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (w *Wallet) FormattedBalance() string {
	return FormatCents(w.balance)
}

// SetBalance overwrites the balance directly (repository hydration)
func (w *Wallet) SetBalance(balanceInCents int64, now time.Time) {
	w.balance = balanceInCents
	w.UpdatedAt = now
}

// CanDeduct reports whether the wallet covers a debit of the given cents
func (w *Wallet) CanDeduct(amountInCents int64) bool {
	return w.balance >= amountInCents
}

// Credit adds the amount to the balance
func (w *Wallet) Credit(amountInCents int64, now time.Time) {
	w.balance += amountInCents
	w.UpdatedAt = now
}

// Debit subtracts the amount from the balance.
// Returns ErrInsufficientBalance when the wallet cannot cover it.
func (w *Wallet) Debit(amountInCents int64, now time.Time) error {
	if w.balance < amountInCents {
		return errs.ErrInsufficientBalance
	}
	w.balance -= amountInCents
	w.UpdatedAt = now
	return nil
}
