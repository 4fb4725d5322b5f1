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

func TestPosterTopup(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("credits the wallet and appends a topup row", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Credit", mock.Anything, uint64(3), int64(10050)).Return(testWallet(t, 3, 10050, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
			return e.Type == entity.TypeTopup && e.AmountInCents == 10050 && e.Reference != ""
		})).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Wallet topped up", mock.Anything).Return()

		balance, err := f.poster.Topup(ctx, 3, "100.50")

		assert.NoError(t, err)
		assert.Equal(t, "100.50", balance)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		_, err := f.poster.Topup(ctx, 3, "0.00")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rejects a malformed amount", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		_, err := f.poster.Topup(ctx, 3, "ten dollars")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		_, err := f.poster.Topup(ctx, 3, "-5.00")

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestPosterWithdraw(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("debits the wallet and appends a negative withdraw row", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(testWallet(t, 3, 7500, fixedTime), nil)
		f.ledgerRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.LedgerEntry) bool {
			return e.Type == entity.TypeWithdraw && e.AmountInCents == -2500
		})).Return(nil)
		f.uow.On("Commit", ctx).Return(nil)
		f.logger.On("Info", "Wallet withdrawal posted", mock.Anything).Return()

		balance, err := f.poster.Withdraw(ctx, 3, "25.00")

		assert.NoError(t, err)
		assert.Equal(t, "75.00", balance)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("rolls back an overdraw", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(nil, errs.ErrInsufficientBalance)
		f.uow.On("Rollback", ctx).Return(nil)

		_, err := f.poster.Withdraw(ctx, 3, "25.00")

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		f.uow.AssertCalled(t, "Rollback", ctx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.ledgerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("treats a missing wallet as insufficient", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.uow.On("Begin", ctx).Return(ctx, nil)
		f.walletRepo.On("Debit", mock.Anything, uint64(3), int64(2500)).Return(nil, errs.ErrWalletNotFound)
		f.uow.On("Rollback", ctx).Return(nil)

		_, err := f.poster.Withdraw(ctx, 3, "25.00")

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	})
}

func TestPosterStatement(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("lists the most recent rows", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		entries := []entity.LedgerEntry{
			{ID: 2, UserID: 3, Type: entity.TypeTopup, AmountInCents: 1000, CreatedAt: fixedTime},
			{ID: 1, UserID: 3, Type: entity.TypePairBonus, AmountInCents: 500, CreatedAt: fixedTime.Add(-time.Hour)},
		}
		f.ledgerRepo.On("ListRecent", ctx, uint64(3), 50).Return(entries, nil)

		got, err := f.poster.Statement(ctx, 3, 0)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("clamps an oversized limit", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		f.ledgerRepo.On("ListRecent", ctx, uint64(3), 50).Return([]entity.LedgerEntry{}, nil)

		_, err := f.poster.Statement(ctx, 3, 9999)

		assert.NoError(t, err)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("rejects zero user id", func(t *testing.T) {
		f := newPosterFixture(fixedTime)

		_, err := f.poster.Statement(ctx, 0, 10)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}
