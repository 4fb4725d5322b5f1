package entity

import (
	"time"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// OrderStatus is the lifecycle state of a deferred-payment order
type OrderStatus string

// Order statuses
const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderPaid           OrderStatus = "paid"
	OrderCancelled      OrderStatus = "cancelled"
)

// PendingOrder is an "order for later": the cart line is persisted
// without payment and settled in bulk by a later complete-orders action.
// Unit price is frozen at order time so later catalog edits cannot
// change what the member owes.
type PendingOrder struct {
	ID            uint64
	UserID        uint64
	ProductID     uint64
	Quantity      int
	UnitPrice     int64 // cents, frozen at order time
	TotalInCents  int64
	AffiliateID   *uint64
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPendingOrder creates a deferred order for the given product line
func NewPendingOrder(userID, productID uint64, quantity int, unitPrice int64, affiliateID *uint64, now time.Time) (*PendingOrder, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}
	return &PendingOrder{
		UserID:       userID,
		ProductID:    productID,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalInCents: unitPrice * int64(quantity),
		AffiliateID:  affiliateID,
		Status:       OrderPendingPayment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsPending reports whether the order can still be completed or cancelled
func (o *PendingOrder) IsPending() bool {
	return o.Status == OrderPendingPayment
}

// MarkPaid flips the order to paid after its ledger rows are posted
func (o *PendingOrder) MarkPaid(now time.Time) error {
	if !o.IsPending() {
		return errs.ErrOrderNotPending
	}
	o.Status = OrderPaid
	o.UpdatedAt = now
	return nil
}

// Cancel voids a still-pending order
func (o *PendingOrder) Cancel(now time.Time) error {
	if !o.IsPending() {
		return errs.ErrOrderNotPending
	}
	o.Status = OrderCancelled
	o.UpdatedAt = now
	return nil
}

// FormattedTotal returns the order total with 2 decimal places
func (o *PendingOrder) FormattedTotal() string {
	return FormatCents(o.TotalInCents)
}
