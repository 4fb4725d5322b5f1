package entity

import (
	"time"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// EntryType classifies a wallet transaction in the append-only ledger
type EntryType string

// Ledger entry types
const (
	TypePairBonus       EntryType = "pair_bonus"
	TypeReferralBonus   EntryType = "referral_bonus"
	TypeLeadershipBonus EntryType = "leadership_bonus"
	TypeMentorBonus     EntryType = "leadership_reverse_bonus"
	TypeAffiliateBonus  EntryType = "affiliate_bonus"
	TypeProductPurchase EntryType = "product_purchase"
	TypePackagePurchase EntryType = "package"
	TypeTopup           EntryType = "topup"
	TypeWithdraw        EntryType = "withdraw"
)

var validEntryTypes = map[EntryType]bool{
	TypePairBonus:       true,
	TypeReferralBonus:   true,
	TypeLeadershipBonus: true,
	TypeMentorBonus:     true,
	TypeAffiliateBonus:  true,
	TypeProductPurchase: true,
	TypePackagePurchase: true,
	TypeTopup:           true,
	TypeWithdraw:        true,
}

// ValidEntryType reports whether t is one of the known ledger types
func ValidEntryType(t EntryType) bool {
	return validEntryTypes[t]
}

// LedgerEntry is one immutable row of the wallet ledger. Amount is
// signed: negative rows are debits (purchases, withdrawals), positive
// rows are credits (bonuses, top-ups). CreatedAt doubles as the anchor
// for bonus-attribution windows, so it is set once and never touched.
type LedgerEntry struct {
	ID            uint64
	Reference     string // external idempotency key, one per posting
	UserID        uint64
	Type          EntryType
	AmountInCents int64
	CreatedAt     time.Time
}

// NewLedgerEntry creates a ledger entry with basic validation
func NewLedgerEntry(reference string, userID uint64, entryType EntryType, amountInCents int64, now time.Time) (*LedgerEntry, error) {
	if reference == "" {
		return nil, errs.ErrInvalidReference
	}
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !ValidEntryType(entryType) {
		return nil, errs.ErrInvalidLedgerType
	}
	return &LedgerEntry{
		Reference:     reference,
		UserID:        userID,
		Type:          entryType,
		AmountInCents: amountInCents,
		CreatedAt:     now,
	}, nil
}

// IsCredit reports whether this entry increases the wallet balance
func (e *LedgerEntry) IsCredit() bool {
	return e.AmountInCents >= 0
}

// IsDebit reports whether this entry decreases the wallet balance
func (e *LedgerEntry) IsDebit() bool {
	return e.AmountInCents < 0
}

// FormattedAmount returns the signed amount with 2 decimal places
func (e *LedgerEntry) FormattedAmount() string {
	return FormatCents(e.AmountInCents)
}
