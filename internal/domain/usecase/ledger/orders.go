package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// PlaceOrder persists a cart line as a pending_payment order instead of
// settling it. The unit price is frozen at order time.
func (p *Poster) PlaceOrder(ctx context.Context, userID, productID uint64, quantity int, affiliateID *uint64) (*entity.PendingOrder, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	product, err := p.uow.GetProductRepository(ctx).GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Purchasable() {
		return nil, fmt.Errorf("%w: product %d", errs.ErrProductUnavailable, productID)
	}

	order, err := entity.NewPendingOrder(userID, productID, quantity, product.PriceInCents, affiliateID, p.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	if err := p.uow.GetOrderRepository(ctx).Create(ctx, order); err != nil {
		return nil, err
	}

	p.logger.Info("Pending order placed", map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
		"total":      order.FormattedTotal(),
	})
	return order, nil
}

// CompleteOrdersResult summarizes a bulk order completion
type CompleteOrdersResult struct {
	Completed     int
	Total         string
	ResultBalance string
}

// CompleteOrders settles every pending order of the user in one
// transaction. The total across all pending orders is validated against
// the wallet first; if the balance falls short by any amount, nothing
// flips to paid. Per order the flow is the same debit / purchase row /
// affiliate credit as immediate checkout.
func (p *Poster) CompleteOrders(ctx context.Context, userID uint64) (*CompleteOrdersResult, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin order completion: %w", err)
	}

	result, err := p.completeOrdersTx(txCtx, userID)
	if err != nil {
		p.rollback(txCtx)
		return nil, err
	}

	if err := p.uow.Commit(txCtx); err != nil {
		p.rollback(txCtx)
		return nil, fmt.Errorf("failed to commit order completion: %w", err)
	}

	p.logger.Info("Pending orders completed", map[string]any{
		"user_id":   userID,
		"completed": result.Completed,
		"total":     result.Total,
	})
	return result, nil
}

func (p *Poster) completeOrdersTx(txCtx context.Context, userID uint64) (*CompleteOrdersResult, error) {
	orderRepo := p.uow.GetOrderRepository(txCtx)
	walletRepo := p.uow.GetWalletRepository(txCtx)
	ledgerRepo := p.uow.GetLedgerRepository(txCtx)
	productRepo := p.uow.GetProductRepository(txCtx)

	orders, err := orderRepo.ListPendingByUser(txCtx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return &CompleteOrdersResult{Completed: 0, Total: "0.00"}, nil
	}

	var total int64
	for _, o := range orders {
		total += o.TotalInCents
	}

	wallet, err := walletRepo.GetByUserID(txCtx, userID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.NewInsufficientBalanceError(userID, entity.FormatCents(total), "0.00")
		}
		return nil, err
	}
	if !wallet.CanDeduct(total) {
		return nil, errs.NewInsufficientBalanceError(userID, entity.FormatCents(total), wallet.FormattedBalance())
	}

	now := p.timeProvider.Now()
	var resultBalance string
	for i := range orders {
		order := &orders[i]

		updated, err := walletRepo.Debit(txCtx, userID, order.TotalInCents)
		if err != nil {
			return nil, errs.NewPostingError(userID, string(entity.TypeProductPurchase),
				order.FormattedTotal(), "wallet debit failed", err)
		}
		resultBalance = updated.FormattedBalance()

		purchase, err := entity.NewLedgerEntry(uuid.NewString(), userID, entity.TypeProductPurchase, -order.TotalInCents, now)
		if err != nil {
			return nil, err
		}
		if err := ledgerRepo.Create(txCtx, purchase); err != nil {
			return nil, errs.NewPostingError(userID, string(entity.TypeProductPurchase),
				purchase.FormattedAmount(), "ledger append failed", err)
		}

		if order.AffiliateID != nil {
			product, err := productRepo.GetByID(txCtx, order.ProductID)
			if err != nil {
				return nil, err
			}
			line := resolvedLine{product: product, quantity: order.Quantity, lineTotal: order.TotalInCents}
			if err := p.creditAffiliate(txCtx, userID, order.AffiliateID, line, now); err != nil {
				return nil, err
			}
		}

		if err := order.MarkPaid(now); err != nil {
			return nil, err
		}
		if err := orderRepo.Update(txCtx, order); err != nil {
			return nil, err
		}
	}

	return &CompleteOrdersResult{
		Completed:     len(orders),
		Total:         entity.FormatCents(total),
		ResultBalance: resultBalance,
	}, nil
}

// CancelOrder voids one of the owner's still-pending orders. Orders
// belonging to someone else are reported as not found rather than
// forbidden, so order ids don't leak.
func (p *Poster) CancelOrder(ctx context.Context, userID, orderID uint64) error {
	if userID == 0 {
		return errs.ErrInvalidUserID
	}

	orderRepo := p.uow.GetOrderRepository(ctx)
	order, err := orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return errs.ErrOrderNotFound
	}
	if err := order.Cancel(p.timeProvider.Now()); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, order); err != nil {
		return err
	}

	p.logger.Info("Pending order cancelled", map[string]any{
		"user_id":  userID,
		"order_id": orderID,
	})
	return nil
}
