package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
)

// PackagePurchaseResult summarizes a committed package purchase
type PackagePurchaseResult struct {
	PackageName   string
	Price         string
	ReferralPaid  string
	ResultBalance string
}

// PurchasePackage debits the buyer by the package price, appends the
// package ledger row, and pays the buyer's sponsor the package's
// referral rate in the same transaction. A buyer without a resolvable
// sponsor simply generates no referral credit.
func (p *Poster) PurchasePackage(ctx context.Context, buyerID, packageID uint64) (*PackagePurchaseResult, error) {
	if buyerID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	pkg, err := p.uow.GetPackageRepository(ctx).GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	wallet, err := p.uow.GetWalletRepository(ctx).GetByUserID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, errs.ErrWalletNotFound) {
			return nil, errs.NewInsufficientBalanceError(buyerID, pkg.FormattedPrice(), "0.00")
		}
		return nil, err
	}
	if !wallet.CanDeduct(pkg.PriceInCents) {
		return nil, errs.NewInsufficientBalanceError(buyerID, pkg.FormattedPrice(), wallet.FormattedBalance())
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin package purchase: %w", err)
	}

	result, err := p.purchasePackageTx(txCtx, buyerID, pkg)
	if err != nil {
		p.rollback(txCtx)
		return nil, err
	}
	if err := p.uow.Commit(txCtx); err != nil {
		p.rollback(txCtx)
		return nil, fmt.Errorf("failed to commit package purchase: %w", err)
	}

	p.logger.Info("Package purchased", map[string]any{
		"buyer_id":   buyerID,
		"package_id": packageID,
		"price":      result.Price,
		"referral":   result.ReferralPaid,
	})
	return result, nil
}

func (p *Poster) purchasePackageTx(txCtx context.Context, buyerID uint64, pkg *entity.Package) (*PackagePurchaseResult, error) {
	walletRepo := p.uow.GetWalletRepository(txCtx)
	ledgerRepo := p.uow.GetLedgerRepository(txCtx)
	now := p.timeProvider.Now()

	wallet, err := walletRepo.Debit(txCtx, buyerID, pkg.PriceInCents)
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			return nil, errs.NewInsufficientBalanceError(buyerID, pkg.FormattedPrice(), "")
		}
		return nil, errs.NewPostingError(buyerID, string(entity.TypePackagePurchase),
			pkg.FormattedPrice(), "wallet debit failed", err)
	}

	purchase, err := entity.NewLedgerEntry(uuid.NewString(), buyerID, entity.TypePackagePurchase, -pkg.PriceInCents, now)
	if err != nil {
		return nil, err
	}
	if err := ledgerRepo.Create(txCtx, purchase); err != nil {
		return nil, errs.NewPostingError(buyerID, string(entity.TypePackagePurchase),
			purchase.FormattedAmount(), "ledger append failed", err)
	}

	referralPaid := int64(0)
	sponsor, err := p.resolveSponsor(txCtx, buyerID)
	if err != nil {
		return nil, err
	}
	if sponsor != nil {
		referralPaid = entity.PercentOf(pkg.PriceInCents, int64(pkg.ReferralRate))
		if referralPaid > 0 {
			if _, err := walletRepo.Credit(txCtx, sponsor.ID, referralPaid); err != nil {
				return nil, errs.NewPostingError(sponsor.ID, string(entity.TypeReferralBonus),
					entity.FormatCents(referralPaid), "sponsor credit failed", err)
			}
			bonus, err := entity.NewLedgerEntry(uuid.NewString(), sponsor.ID, entity.TypeReferralBonus, referralPaid, now)
			if err != nil {
				return nil, err
			}
			if err := ledgerRepo.Create(txCtx, bonus); err != nil {
				return nil, errs.NewPostingError(sponsor.ID, string(entity.TypeReferralBonus),
					bonus.FormattedAmount(), "ledger append failed", err)
			}
		}
	}

	return &PackagePurchaseResult{
		PackageName:   pkg.Name,
		Price:         pkg.FormattedPrice(),
		ReferralPaid:  entity.FormatCents(referralPaid),
		ResultBalance: wallet.FormattedBalance(),
	}, nil
}

// resolveSponsor finds the buyer's sponsor by id when set, falling back
// to the by-name sponsor edge. An unresolvable sponsor is nil, not an
// error.
func (p *Poster) resolveSponsor(txCtx context.Context, buyerID uint64) (*entity.User, error) {
	userRepo := p.uow.GetUserRepository(txCtx)

	buyer, err := userRepo.GetByID(txCtx, buyerID)
	if err != nil {
		return nil, err
	}

	if buyer.SponsorID != nil && *buyer.SponsorID != buyerID {
		sponsor, err := userRepo.GetByID(txCtx, *buyer.SponsorID)
		if err == nil {
			return sponsor, nil
		}
		if !errs.IsUserNotFoundError(err) {
			return nil, err
		}
	}

	if buyer.SponsorName != "" && buyer.SponsorName != buyer.Username {
		sponsor, err := userRepo.GetByUsername(txCtx, buyer.SponsorName)
		if err == nil {
			return sponsor, nil
		}
		if !errs.IsUserNotFoundError(err) {
			return nil, err
		}
	}

	return nil, nil
}
