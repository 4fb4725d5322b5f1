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

func starterPackage() *entity.Package {
	return &entity.Package{
		ID:           1,
		Name:         "starter",
		PriceInCents: 50000,
		PV:           100,
		DailyMax:     5,
		PairRate:     10,
		ReferralRate: 10,
	}
}

func TestPosterPurchasePackage(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("debits the buyer and pays the sponsor's referral", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		sponsorID := uint64(1)
		f.pkg.On("GetByID", ctx, uint64(1)).Return(starterPackage(), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 50000, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(50000)).Return(testWallet(t, 3, 0, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
			return e.Type == entity.TypePackagePurchase && e.AmountInCents == -50000 && e.UserID == 3
		})).Return(nil)
		f.userRepo.On("GetByID", mock.Anything, uint64(3)).Return(&entity.User{ID: 3, Username: "bob", SponsorID: &sponsorID, SponsorName: "alice"}, nil)
		f.userRepo.On("GetByID", mock.Anything, uint64(1)).Return(&entity.User{ID: 1, Username: "alice"}, nil)
		f.walletRepo.On("Credit", mock.Anything, uint64(1), int64(5000)).Return(testWallet(t, 1, 5000, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
			return e.Type == entity.TypeReferralBonus && e.AmountInCents == 5000 && e.UserID == 1
		})).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Package purchased", mock.Anything).Return()

		result, err := f.poster.PurchasePackage(ctx, 3, 1)

		assert.NoError(t, err)
		assert.Equal(t, "starter", result.PackageName)
		assert.Equal(t, "500.00", result.Price)
		assert.Equal(t, "50.00", result.ReferralPaid)
		assert.Equal(t, "0.00", result.ResultBalance)
		f.walletRepo.AssertExpectations(t)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("falls back to the sponsor name when no sponsor id is set", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.pkg.On("GetByID", ctx, uint64(1)).Return(starterPackage(), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 50000, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(50000)).Return(testWallet(t, 3, 0, fixedTime), nil)
		f.userRepo.On("GetByID", mock.Anything, uint64(3)).Return(&entity.User{ID: 3, Username: "bob", SponsorName: "alice"}, nil)
		f.userRepo.On("GetByUsername", mock.Anything, "alice").Return(&entity.User{ID: 1, Username: "alice"}, nil)
		f.walletRepo.On("Credit", mock.Anything, uint64(1), int64(5000)).Return(testWallet(t, 1, 5000, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Package purchased", mock.Anything).Return()

		result, err := f.poster.PurchasePackage(ctx, 3, 1)

		assert.NoError(t, err)
		assert.Equal(t, "50.00", result.ReferralPaid)
		f.userRepo.AssertCalled(t, "GetByUsername", mock.Anything, "alice")
	})

	t.Run("pays no referral when the buyer has no resolvable sponsor", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.pkg.On("GetByID", ctx, uint64(1)).Return(starterPackage(), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 50000, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(50000)).Return(testWallet(t, 3, 0, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.userRepo.On("GetByID", mock.Anything, uint64(3)).Return(&entity.User{ID: 3, Username: "bob"}, nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Package purchased", mock.Anything).Return()

		result, err := f.poster.PurchasePackage(ctx, 3, 1)

		assert.NoError(t, err)
		assert.Equal(t, "0.00", result.ReferralPaid)
		f.walletRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skips the referral when the sponsor name vanished", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.pkg.On("GetByID", ctx, uint64(1)).Return(starterPackage(), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 50000, fixedTime), nil)
		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(50000)).Return(testWallet(t, 3, 0, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.userRepo.On("GetByID", mock.Anything, uint64(3)).Return(&entity.User{ID: 3, Username: "bob", SponsorName: "ghost"}, nil)
		f.userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, errs.ErrUserNotFound)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Package purchased", mock.Anything).Return()

		result, err := f.poster.PurchasePackage(ctx, 3, 1)

		assert.NoError(t, err)
		assert.Equal(t, "0.00", result.ReferralPaid)
	})

	t.Run("rejects a balance below the package price", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.pkg.On("GetByID", ctx, uint64(1)).Return(starterPackage(), nil)
		f.walletRepo.On("GetByUserID", ctx, uint64(3)).Return(testWallet(t, 3, 49999, fixedTime), nil)

		result, err := f.poster.PurchasePackage(ctx, 3, 1)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("surfaces an unknown package", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.pkg.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrPackageNotFound)

		result, err := f.poster.PurchasePackage(ctx, 3, 99)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrPackageNotFound)
	})
}
