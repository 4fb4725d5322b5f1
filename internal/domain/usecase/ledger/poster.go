package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/persistence"
)

// Poster atomically applies financial movements: wallet balance changes
// together with their matching ledger rows, optionally cascading a
// commission to a second party. Every posting is all-or-nothing across
// its line items; a failure anywhere rolls the whole movement back.
type Poster struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewPoster creates a ledger poster
func NewPoster(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Poster {
	return &Poster{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CartItem is one checkout line, as populated by the caller's session
// cart. The transaction boundary here is independent of how the cart
// was assembled.
type CartItem struct {
	ProductID uint64
	Quantity  int
}

// CheckoutResult summarizes a committed checkout
type CheckoutResult struct {
	Total         string
	ItemCount     int
	ResultBalance string
}

// resolvedLine is a cart item with its product and frozen totals
type resolvedLine struct {
	product   *entity.Product
	quantity  int
	lineTotal int64
}

// Checkout debits the buyer and appends one product_purchase row per
// line item, crediting the attributed affiliate where the product
// defines a rate. The buyer's balance is checked up front for a fast
// failure and re-checked under the row lock inside the transaction.
func (p *Poster) Checkout(ctx context.Context, buyerID uint64, items []CartItem, affiliateID *uint64) (*CheckoutResult, error) {
	if buyerID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if len(items) == 0 {
		return nil, errs.ErrEmptyCart
	}

	lines, total, err := p.resolveLines(ctx, items)
	if err != nil {
		return nil, err
	}

	// Fast pre-check without locks. The authoritative check happens
	// again inside the transaction.
	wallet, err := p.uow.GetWalletRepository(ctx).GetByUserID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, errs.ErrWalletNotFound) {
			return nil, errs.NewInsufficientBalanceError(buyerID, entity.FormatCents(total), "0.00")
		}
		return nil, err
	}
	if !wallet.CanDeduct(total) {
		return nil, errs.NewInsufficientBalanceError(buyerID, entity.FormatCents(total), wallet.FormattedBalance())
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	result, err := p.postLines(txCtx, buyerID, lines, affiliateID)
	if err != nil {
		p.rollback(txCtx)
		return nil, err
	}

	if err := p.uow.Commit(txCtx); err != nil {
		p.rollback(txCtx)
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	p.logger.Info("Checkout committed", map[string]any{
		"buyer_id":   buyerID,
		"item_count": len(lines),
		"total":      entity.FormatCents(total),
	})

	return &CheckoutResult{
		Total:         entity.FormatCents(total),
		ItemCount:     len(lines),
		ResultBalance: result,
	}, nil
}

// resolveLines loads each product, rejects inactive ones and freezes
// line totals before any money moves.
func (p *Poster) resolveLines(ctx context.Context, items []CartItem) ([]resolvedLine, int64, error) {
	productRepo := p.uow.GetProductRepository(ctx)

	lines := make([]resolvedLine, 0, len(items))
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, errs.ErrInvalidQuantity
		}
		product, err := productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, 0, err
		}
		if !product.Purchasable() {
			return nil, 0, fmt.Errorf("%w: product %d", errs.ErrProductUnavailable, item.ProductID)
		}
		lineTotal := product.PriceInCents * int64(item.Quantity)
		lines = append(lines, resolvedLine{
			product:   product,
			quantity:  item.Quantity,
			lineTotal: lineTotal,
		})
		total += lineTotal
	}
	return lines, total, nil
}

// postLines performs the per-line debit, purchase row, and affiliate
// credit inside an open transaction. Returns the buyer's formatted
// balance after the final debit.
func (p *Poster) postLines(txCtx context.Context, buyerID uint64, lines []resolvedLine, affiliateID *uint64) (string, error) {
	walletRepo := p.uow.GetWalletRepository(txCtx)
	ledgerRepo := p.uow.GetLedgerRepository(txCtx)
	now := p.timeProvider.Now()

	var resultBalance string
	for _, line := range lines {
		wallet, err := walletRepo.Debit(txCtx, buyerID, line.lineTotal)
		if err != nil {
			if errs.IsInsufficientBalanceError(err) {
				return "", errs.NewInsufficientBalanceError(buyerID, entity.FormatCents(line.lineTotal), "")
			}
			return "", errs.NewPostingError(buyerID, string(entity.TypeProductPurchase),
				entity.FormatCents(line.lineTotal), "wallet debit failed", err)
		}
		resultBalance = wallet.FormattedBalance()

		purchase, err := entity.NewLedgerEntry(uuid.NewString(), buyerID, entity.TypeProductPurchase, -line.lineTotal, now)
		if err != nil {
			return "", err
		}
		if err := ledgerRepo.Create(txCtx, purchase); err != nil {
			return "", errs.NewPostingError(buyerID, string(entity.TypeProductPurchase),
				purchase.FormattedAmount(), "ledger append failed", err)
		}

		if err := p.creditAffiliate(txCtx, buyerID, affiliateID, line, now); err != nil {
			return "", err
		}
	}
	return resultBalance, nil
}

// creditAffiliate pays the attributed affiliate for one line. The
// commission comes from the business, not from a second buyer debit.
// A missing affiliate wallet is created with zero balance first; the
// credit path is upsert-backed so racing purchases cannot collide.
func (p *Poster) creditAffiliate(txCtx context.Context, buyerID uint64, affiliateID *uint64, line resolvedLine, now time.Time) error {
	if affiliateID == nil || *affiliateID == 0 || *affiliateID == buyerID {
		return nil
	}
	commission := entity.PercentOf(line.lineTotal, int64(line.product.AffiliateRate))
	if commission <= 0 {
		return nil
	}

	walletRepo := p.uow.GetWalletRepository(txCtx)
	ledgerRepo := p.uow.GetLedgerRepository(txCtx)

	if _, err := walletRepo.Credit(txCtx, *affiliateID, commission); err != nil {
		return errs.NewPostingError(*affiliateID, string(entity.TypeAffiliateBonus),
			entity.FormatCents(commission), "affiliate credit failed", err)
	}

	bonus, err := entity.NewLedgerEntry(uuid.NewString(), *affiliateID, entity.TypeAffiliateBonus, commission, now)
	if err != nil {
		return err
	}
	if err := ledgerRepo.Create(txCtx, bonus); err != nil {
		return errs.NewPostingError(*affiliateID, string(entity.TypeAffiliateBonus),
			bonus.FormattedAmount(), "ledger append failed", err)
	}
	return nil
}

// rollback rolls back the transaction in txCtx, logging instead of
// masking the original posting error.
func (p *Poster) rollback(txCtx context.Context) {
	if err := p.uow.Rollback(txCtx); err != nil {
		p.logger.Error("Failed to roll back posting transaction", map[string]any{
			"error": err.Error(),
		})
	}
}
