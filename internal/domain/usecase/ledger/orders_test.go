package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

func pendingOrder(t *testing.T, userID, productID uint64, quantity int, unitPrice int64, now time.Time) entity.PendingOrder {
	t.Helper()
	order, err := entity.NewPendingOrder(userID, productID, quantity, unitPrice, nil, now)
	assert.NoError(t, err)
	return *order
}

func TestPosterPlaceOrder(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("persists a pending order with the price frozen", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.product.On("GetByID", ctx, uint64(11)).Return(activeProduct(11, 1999, 10), nil)
		f.orders.On("Create", ctx, mock.MatchedBy(func(o *entity.PendingOrder) bool {
			return o.UserID == 3 && o.UnitPrice == 1999 && o.TotalInCents == 3998 && o.IsPending()
		})).Return(nil)
		f.logger.On("Info", "Pending order placed", mock.Anything).Return()

		order, err := f.poster.PlaceOrder(ctx, 3, 11, 2, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(3998), order.TotalInCents)
		f.orders.AssertExpectations(t)
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		inactive := activeProduct(11, 1999, 10)
		inactive.Status = entity.ProductInactive
		f.product.On("GetByID", ctx, uint64(11)).Return(inactive, nil)

		order, err := f.poster.PlaceOrder(ctx, 3, 11, 1, nil)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, errs.ErrProductUnavailable)
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPosterCompleteOrders(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("settles every pending order when the balance covers the total", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		orders := []entity.PendingOrder{
			pendingOrder(t, 3, 11, 1, 2500, fixedTime),
			pendingOrder(t, 3, 12, 1, 3500, fixedTime),
		}
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.orders.On("ListPendingByUser", mock.Anything, uint64(3)).Return(orders, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(3)).Return(testWallet(t, 3, 6000, fixedTime), nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(testWallet(t, 3, 3500, fixedTime), nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(3500)).Return(testWallet(t, 3, 0, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
			return e.Type == entity.TypeProductPurchase && e.IsDebit()
		})).Return(nil)
		f.orders.On("Update", mock.Anything, mock.MatchedBy(func(o *entity.PendingOrder) bool {
			return o.Status == entity.OrderPaid
		})).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Pending orders completed", mock.Anything).Return()

		result, err := f.poster.CompleteOrders(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Completed)
		assert.Equal(t, "60.00", result.Total)
		assert.Equal(t, "0.00", result.ResultBalance)
		f.orders.AssertExpectations(t)
	})

	t.Run("flips nothing when the balance falls short by a cent", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		orders := []entity.PendingOrder{
			pendingOrder(t, 3, 11, 1, 2500, fixedTime),
			pendingOrder(t, 3, 12, 1, 3500, fixedTime),
		}
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.orders.On("ListPendingByUser", mock.Anything, uint64(3)).Return(orders, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(3)).Return(testWallet(t, 3, 5999, fixedTime), nil)
		f.uow.On("Rollback", ctx).Return(nil)

		result, err := f.poster.CompleteOrders(ctx, 3)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		f.walletRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("completes zero orders as a no-op", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.orders.On("ListPendingByUser", mock.Anything, uint64(3)).Return([]entity.PendingOrder{}, nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Pending orders completed", mock.Anything).Return()

		result, err := f.poster.CompleteOrders(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Completed)
		assert.Equal(t, "0.00", result.Total)
		f.walletRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})

	t.Run("credits the attributed affiliate while settling", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		affiliateID := uint64(9)
		order, err := entity.NewPendingOrder(3, 11, 1, 2500, &affiliateID, fixedTime)
		assert.NoError(t, err)

		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.orders.On("ListPendingByUser", mock.Anything, uint64(3)).Return([]entity.PendingOrder{*order}, nil)
		f.walletRepo.On("GetByUserID", mock.Anything, uint64(3)).Return(testWallet(t, 3, 2500, fixedTime), nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(testWallet(t, 3, 0, fixedTime), nil)
		f.product.On("GetByID", mock.Anything, uint64(11)).Return(activeProduct(11, 2500, 10), nil)
		f.walletRepo.On("Credit", mock.Anything, uint64(9), int64(250)).Return(testWallet(t, 9, 250, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.orders.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Pending orders completed", mock.Anything).Return()

		result, err := f.poster.CompleteOrders(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Completed)
		f.walletRepo.AssertCalled(t, "Credit", mock.Anything, uint64(9), int64(250))
	})
}

func TestPosterCancelOrder(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("cancels the owner's pending order", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		order, _ := entity.NewPendingOrder(3, 11, 1, 2500, nil, fixedTime)
		order.ID = 77
		f.orders.On("GetByID", ctx, uint64(77)).Return(order, nil)
		f.orders.On("Update", ctx, mock.MatchedBy(func(o *entity.PendingOrder) bool {
			return o.Status == entity.OrderCancelled
		})).Return(nil)
		f.logger.On("Info", "Pending order cancelled", mock.Anything).Return()

		err := f.poster.CancelOrder(ctx, 3, 77)

		assert.NoError(t, err)
		f.orders.AssertExpectations(t)
	})

	t.Run("reports someone else's order as not found", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		order, _ := entity.NewPendingOrder(4, 11, 1, 2500, nil, fixedTime)
		order.ID = 77
		f.orders.On("GetByID", ctx, uint64(77)).Return(order, nil)

		err := f.poster.CancelOrder(ctx, 3, 77)

		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("cannot cancel an already paid order", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		order, _ := entity.NewPendingOrder(3, 11, 1, 2500, nil, fixedTime)
		order.ID = 77
		_ = order.MarkPaid(fixedTime)
		f.orders.On("GetByID", ctx, uint64(77)).Return(order, nil)

		err := f.poster.CancelOrder(ctx, 3, 77)

		assert.ErrorIs(t, err, errs.ErrOrderNotPending)
	})
}
