package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	mockcore "github.com/kiarash-moradi/mlm-dashboard/mocks/port/core"
	mockpersistence "github.com/kiarash-moradi/mlm-dashboard/mocks/port/persistence"
)

// posterFixture bundles the mocked dependencies behind a Poster
type posterFixture struct {
	uow        *mockpersistence.MockUnitOfWork
	userRepo   *mockpersistence.MockUserRepository
	walletRepo *mockpersistence.MockWalletRepository
	ledgerRepo *mockpersistence.MockLedgerRepository
	product    *mockpersistence.MockProductRepository
	pkg        *mockpersistence.MockPackageRepository
	orders     *mockpersistence.MockOrderRepository
	timeProv   *mockcore.MockTimeProvider
	logger     *mockcore.MockLogger
	poster     *Poster
}

func newPosterFixture(fixedTime time.Time) *posterFixture {
	f := &posterFixture{
		uow:        new(mockpersistence.MockUnitOfWork),
		userRepo:   new(mockpersistence.MockUserRepository),
		walletRepo: new(mockpersistence.MockWalletRepository),
		ledgerRepo: new(mockpersistence.MockLedgerRepository),
		product:    new(mockpersistence.MockProductRepository),
		pkg:        new(mockpersistence.MockPackageRepository),
		orders:     new(mockpersistence.MockOrderRepository),
		timeProv:   new(mockcore.MockTimeProvider),
		logger:     new(mockcore.MockLogger),
	}

	f.uow.On("GetUserRepository", mock.Anything).Return(f.userRepo).Maybe()
	f.uow.On("GetWalletRepository", mock.Anything).Return(f.walletRepo).Maybe()
	f.uow.On("GetLedgerRepository", mock.Anything).Return(f.ledgerRepo).Maybe()
	f.uow.On("GetProductRepository", mock.Anything).Return(f.product).Maybe()
	f.uow.On("GetPackageRepository", mock.Anything).Return(f.pkg).Maybe()
	f.uow.On("GetOrderRepository", mock.Anything).Return(f.orders).Maybe()
	f.timeProv.On("Now").Return(fixedTime).Maybe()

	f.poster = NewPoster(f.uow, f.timeProv, f.logger)
	return f
}

func testWallet(t *testing.T, userID uint64, cents int64, now time.Time) *entity.Wallet {
	t.Helper()
	wallet, err := entity.NewWallet(userID, cents, now)
	assert.NoError(t, err)
	return wallet
}

func activeProduct(id uint64, priceInCents int64, affiliateRate int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          "product",
		PriceInCents:  priceInCents,
		AffiliateRate: affiliateRate,
		Status:        entity.ProductActive,
	}
}

func TestPosterCheckout(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("settles a cart with an exactly covering balance", func(t *testing.T) {
		f := newPosterFixture(fixedTime)
		affiliateID := uint64(9)

		f.product.On("GetByID", ctx, uint64(11)).Return(activeProduct(11, 2500, 10), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 5000, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(5000)).Return(testWallet(t, 3, 0, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
			return e.Type == entity.TypeProductPurchase && e.AmountInCents == -5000 && e.UserID == 3
		})).Return(nil)
		f.walletRepo.On("Credit", mock.Anything, uint64(9), int64(500)).Return(testWallet(t, 9, 500, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
			return e.Type == entity.TypeAffiliateBonus && e.AmountInCents == 500 && e.UserID == 9
		})).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Checkout committed", mock.Anything).Return()

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 2}}, &affiliateID)

		assert.NoError(t, err)
		assert.Equal(t, "50.00", result.Total)
		assert.Equal(t, 1, result.ItemCount)
		assert.Equal(t, "0.00", result.ResultBalance)
		f.walletRepo.AssertExpectations(t)
		f.ledgerRepo.AssertExpectations(t)
		f.uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("skips the affiliate credit without an attributed affiliate", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.product.On("GetByID", ctx, uint64(11)).Return(activeProduct(11, 2500, 10), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 10000, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(testWallet(t, 3, 7500, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Checkout committed", mock.Anything).Return()

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 1}}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "75.00", result.ResultBalance)
		f.walletRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a balance that falls short without opening a transaction", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.product.On("GetByID", ctx, uint64(11)).Return(activeProduct(11, 2500, 10), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 4999, fixedTime), nil)

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 2}}, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.walletRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("treats a missing wallet as a zero balance", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.product.On("GetByID", ctx, uint64(11)).Return(activeProduct(11, 2500, 10), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(nil, errs.ErrWalletNotFound)

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 1}}, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		var detailed *errs.InsufficientBalanceError
		assert.ErrorAs(t, err, &detailed)
		assert.Equal(t, "0.00", detailed.CurrBalance)
	})

	t.Run("rejects an inactive product before any money moves", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		inactive := activeProduct(11, 2500, 10)
		inactive.Status = entity.ProductInactive
		f.product.On("GetByID", ctx, uint64(11)).Return(inactive, nil)

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 1}}, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrProductUnavailable)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		result, err := f.poster.Checkout(ctx, 3, nil, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrEmptyCart)
	})

	t.Run("rejects a non positive quantity", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 0}}, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
	})

	t.Run("rolls back when a ledger append fails", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.product.On("GetByID", ctx, uint64(11)).Return(activeProduct(11, 2500, 0), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 10000, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(testWallet(t, 3, 7500, fixedTime), nil)
		dbError := errors.New("connection reset")
		f.ledgerRepo.On("Create", mock.Anything, mock.Anything).Return(dbError)
		f.uow.On("Rollback", ctx).Return(nil)

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 1}}, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, dbError)
		f.uow.AssertCalled(t, "Rollback", ctx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("rolls back when the locked debit fails the recheck", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.product.On("GetByID", ctx, uint64(11)).Return(activeProduct(11, 2500, 0), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 2500, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		// Another transaction drained the wallet between the pre-check and the lock.
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(nil, errs.ErrInsufficientBalance)
		f.uow.On("Rollback", ctx).Return(nil)

		result, err := f.poster.Checkout(ctx, 3, []CartItem{{ProductID: 11, Quantity: 1}}, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		f.uow.AssertCalled(t, "Rollback", ctx)
	})
}
