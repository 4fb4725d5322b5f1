package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

func TestNewPendingOrder(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("freezes unit price and computes the total", func(t *testing.T) {
		affiliateID := uint64(9)
		order, err := NewPendingOrder(3, 11, 4, 1999, &affiliateID, now)
		assert.NoError(t, err)
		assert.Equal(t, uint64(3), order.UserID)
		assert.Equal(t, uint64(11), order.ProductID)
		assert.Equal(t, int64(1999), order.UnitPrice)
		assert.Equal(t, int64(7996), order.TotalInCents)
		assert.Equal(t, "79.96", order.FormattedTotal())
		assert.Equal(t, OrderPendingPayment, order.Status)
		assert.True(t, order.IsPending())
	})

	t.Run("rejects zero user id", func(t *testing.T) {
		order, err := NewPendingOrder(0, 11, 1, 1999, nil, now)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		order, err := NewPendingOrder(3, 11, 0, 1999, nil, now)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
	})
}

func TestPendingOrderLifecycle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("marks a pending order paid", func(t *testing.T) {
		order, _ := NewPendingOrder(3, 11, 1, 1999, nil, now)

		err := order.MarkPaid(now.Add(time.Hour))
		assert.NoError(t, err)
		assert.Equal(t, OrderPaid, order.Status)
		assert.False(t, order.IsPending())
	})

	t.Run("cancels a pending order", func(t *testing.T) {
		order, _ := NewPendingOrder(3, 11, 1, 1999, nil, now)

		err := order.Cancel(now.Add(time.Hour))
		assert.NoError(t, err)
		assert.Equal(t, OrderCancelled, order.Status)
	})

	t.Run("cannot pay a cancelled order", func(t *testing.T) {
		order, _ := NewPendingOrder(3, 11, 1, 1999, nil, now)
		_ = order.Cancel(now)

		err := order.MarkPaid(now)
		assert.ErrorIs(t, err, errs.ErrOrderNotPending)
		assert.Equal(t, OrderCancelled, order.Status)
	})

	t.Run("cannot cancel a paid order", func(t *testing.T) {
		order, _ := NewPendingOrder(3, 11, 1, 1999, nil, now)
		_ = order.MarkPaid(now)

		err := order.Cancel(now)
		assert.ErrorIs(t, err, errs.ErrOrderNotPending)
		assert.Equal(t, OrderPaid, order.Status)
	})
}
