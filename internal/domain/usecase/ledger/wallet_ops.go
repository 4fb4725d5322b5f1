package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// Topup credits the user's wallet and appends a topup ledger row in one
// transaction. Amount is the decimal string the member typed in.
func (p *Poster) Topup(ctx context.Context, userID uint64, amount string) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidUserID
	}
	cents, err := entity.ParseAmount(amount)
	if err != nil {
		return "", err
	}
	if cents == 0 {
		return "", fmt.Errorf("%w: zero top-up", errs.ErrInvalidAmount)
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin top-up: %w", err)
	}

	balance, err := p.postSingle(txCtx, userID, entity.TypeTopup, cents)
	if err != nil {
		p.rollback(txCtx)
		return "", err
	}
	if err := p.uow.Commit(txCtx); err != nil {
		p.rollback(txCtx)
		return "", fmt.Errorf("failed to commit top-up: %w", err)
	}

	p.logger.Info("Wallet topped up", map[string]any{
		"user_id": userID,
		"amount":  amount,
		"balance": balance,
	})
	return balance, nil
}

// Withdraw debits the user's wallet and appends a withdraw ledger row.
// The balance check runs under the row lock, so concurrent withdrawals
// cannot both pass against a stale balance.
func (p *Poster) Withdraw(ctx context.Context, userID uint64, amount string) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidUserID
	}
	cents, err := entity.ParseAmount(amount)
	if err != nil {
		return "", err
	}
	if cents == 0 {
		return "", fmt.Errorf("%w: zero withdrawal", errs.ErrInvalidAmount)
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin withdrawal: %w", err)
	}

	balance, err := p.postSingle(txCtx, userID, entity.TypeWithdraw, -cents)
	if err != nil {
		p.rollback(txCtx)
		if errs.IsInsufficientBalanceError(err) {
			return "", errs.NewInsufficientBalanceError(userID, amount, "")
		}
		return "", err
	}
	if err := p.uow.Commit(txCtx); err != nil {
		p.rollback(txCtx)
		return "", fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	p.logger.Info("Wallet withdrawal posted", map[string]any{
		"user_id": userID,
		"amount":  amount,
		"balance": balance,
	})
	return balance, nil
}

// postSingle applies one signed movement and its ledger row inside an
// open transaction, returning the formatted balance afterwards.
func (p *Poster) postSingle(txCtx context.Context, userID uint64, entryType entity.EntryType, signedCents int64) (string, error) {
	walletRepo := p.uow.GetWalletRepository(txCtx)
	ledgerRepo := p.uow.GetLedgerRepository(txCtx)

	var wallet *entity.Wallet
	var err error
	if signedCents >= 0 {
		wallet, err = walletRepo.Credit(txCtx, userID, signedCents)
	} else {
		wallet, err = walletRepo.Debit(txCtx, userID, -signedCents)
	}
	if err != nil {
		if errs.IsInsufficientBalanceError(err) || errors.Is(err, errs.ErrWalletNotFound) {
			return "", errs.ErrInsufficientBalance
		}
		return "", errs.NewPostingError(userID, string(entryType),
			entity.FormatCents(signedCents), "wallet update failed", err)
	}

	entry, err := entity.NewLedgerEntry(uuid.NewString(), userID, entryType, signedCents, p.timeProvider.Now())
	if err != nil {
		return "", err
	}
	if err := ledgerRepo.Create(txCtx, entry); err != nil {
		return "", errs.NewPostingError(userID, string(entryType),
			entry.FormattedAmount(), "ledger append failed", err)
	}

	return wallet.FormattedBalance(), nil
}

// Statement returns the user's most recent ledger rows for the
// dashboard's transaction list.
func (p *Poster) Statement(ctx context.Context, userID uint64, limit int) ([]entity.LedgerEntry, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return p.uow.GetLedgerRepository(ctx).ListRecent(ctx, userID, limit)
}
