package commission

import (
	"context"
	"time"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/persistence"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/tree"
)

const (
	// AffiliateSaleWindow is the ±window used to correlate an
	// affiliate_bonus credit with the product_purchase debit that caused
	// it. There is no causal foreign key between the two rows; the
	// day-window match is a heuristic and is kept as such.
	AffiliateSaleWindow = 24 * time.Hour

	// DefaultRecentSales caps the affiliate sales listing
	DefaultRecentSales = 10
)

// Engine aggregates bonus amounts already present in the ledger. It
// never posts anything: pair bonuses are produced by the daily pairing
// job, purchase-time credits by the checkout flow. Reads degrade to
// zero/empty when nothing matches; only connectivity failures surface
// as errors.
type Engine struct {
	ledgerRepo persistence.LedgerRepository
	userRepo   persistence.UserRepository
	walker     *tree.Walker
	logger     coreport.Logger
}

// NewEngine creates a commission engine
func NewEngine(
	ledgerRepo persistence.LedgerRepository,
	userRepo persistence.UserRepository,
	walker *tree.Walker,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		walker:     walker,
		logger:     logger,
	}
}

// TotalByType returns the formatted sum of a user's ledger rows of the
// given type, "0.00" when there are none.
func (e *Engine) TotalByType(ctx context.Context, userID uint64, entryType entity.EntryType) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidUserID
	}
	if !entity.ValidEntryType(entryType) {
		return "", errs.ErrInvalidLedgerType
	}

	sum, err := e.ledgerRepo.SumByType(ctx, userID, entryType)
	if err != nil {
		e.logger.Error("Failed to sum ledger entries", map[string]any{
			"user_id": userID,
			"type":    entryType,
			"error":   err.Error(),
		})
		return "", err
	}
	return entity.FormatCents(sum), nil
}

// PerAncestorBonus reports how much of an ancestor's bonus of the given
// type counts as earned from one specific descendant. The attribution
// window opens at the descendant's first pair_bonus row: rows the
// ancestor earned before the descendant ever paired are excluded, and a
// descendant that never paired attributes nothing at all.
func (e *Engine) PerAncestorBonus(ctx context.Context, ancestorID, descendantID uint64, entryType entity.EntryType) (int64, error) {
	return e.bonusSinceFirstPair(ctx, ancestorID, descendantID, entryType)
}

// PerIndirectBonus is the symmetric view from the mentor's side: how
// much of a descendant's mentor bonus counts as earned from the viewing
// ancestor's pairing activity. Same window rule, anchored at the
// mentor's own first pair_bonus.
func (e *Engine) PerIndirectBonus(ctx context.Context, descendantID, mentorID uint64, entryType entity.EntryType) (int64, error) {
	return e.bonusSinceFirstPair(ctx, descendantID, mentorID, entryType)
}

// bonusSinceFirstPair sums beneficiary rows of entryType created at or
// after the source user's first pair_bonus row. A source with no pair
// bonus yet has an unopened window, which correctly yields zero.
func (e *Engine) bonusSinceFirstPair(ctx context.Context, beneficiaryID, sourceID uint64, entryType entity.EntryType) (int64, error) {
	if beneficiaryID == 0 || sourceID == 0 {
		return 0, errs.ErrInvalidUserID
	}
	if !entity.ValidEntryType(entryType) {
		return 0, errs.ErrInvalidLedgerType
	}

	firstPair, err := e.ledgerRepo.FirstEntryTime(ctx, sourceID, entity.TypePairBonus)
	if err != nil {
		e.logger.Error("Failed to resolve first pair bonus time", map[string]any{
			"source_id": sourceID,
			"error":     err.Error(),
		})
		return 0, err
	}
	if firstPair == nil {
		return 0, nil
	}

	sum, err := e.ledgerRepo.SumByTypeSince(ctx, beneficiaryID, entryType, *firstPair)
	if err != nil {
		e.logger.Error("Failed to sum windowed bonus", map[string]any{
			"beneficiary_id": beneficiaryID,
			"source_id":      sourceID,
			"type":           entryType,
			"error":          err.Error(),
		})
		return 0, err
	}
	return sum, nil
}

// ReportRow is one line of an ancestor or indirect bonus listing
type ReportRow struct {
	Label  string `json:"label"`
	Level  int    `json:"level"`
	Amount string `json:"amount"`
}

// AncestorBonusReport lists the viewing user's uplines (5 levels) with
// the leadership bonus each earned from this user's pairing.
func (e *Engine) AncestorBonusReport(ctx context.Context, userID uint64) ([]ReportRow, error) {
	ancestors, err := e.walker.AncestorsOf(ctx, userID, tree.MaxWalkDepth)
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(ancestors))
	for _, a := range ancestors {
		amount, err := e.PerAncestorBonus(ctx, a.UserID, userID, entity.TypeLeadershipBonus)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ReportRow{
			Label:  a.Username,
			Level:  a.Level,
			Amount: entity.FormatCents(amount),
		})
	}
	return rows, nil
}

// IndirectBonusReport lists the viewing user's sponsored descendants
// (5 levels) with the mentor bonus each earned from this user's pairing.
func (e *Engine) IndirectBonusReport(ctx context.Context, userID uint64) ([]ReportRow, error) {
	indirects, err := e.walker.IndirectsOf(ctx, userID, tree.MaxWalkDepth)
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(indirects))
	for _, d := range indirects {
		amount, err := e.PerIndirectBonus(ctx, d.UserID, userID, entity.TypeMentorBonus)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ReportRow{
			Label:  d.Username,
			Level:  d.Level,
			Amount: entity.FormatCents(amount),
		})
	}
	return rows, nil
}

// AffiliateSale is one correlated store sale in the affiliate's view
type AffiliateSale struct {
	Amount        string    `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
	BuyerUsername string    `json:"buyerUsername"`
}

// RecentAffiliateSales lists the user's latest affiliate_bonus credits
// and pairs each with the other-user product_purchase debit closest to
// it within ±1 day. A credit with no matching debit is listed with an
// empty buyer rather than dropped.
func (e *Engine) RecentAffiliateSales(ctx context.Context, userID uint64, limit int) ([]AffiliateSale, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if limit <= 0 || limit > DefaultRecentSales {
		limit = DefaultRecentSales
	}

	credits, err := e.ledgerRepo.ListByType(ctx, userID, entity.TypeAffiliateBonus, limit)
	if err != nil {
		e.logger.Error("Failed to list affiliate credits", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	sales := make([]AffiliateSale, 0, len(credits))
	for _, credit := range credits {
		sale := AffiliateSale{
			Amount:    credit.FormattedAmount(),
			CreatedAt: credit.CreatedAt,
		}

		purchase, err := e.ledgerRepo.FindPurchaseAround(ctx, entity.TypeProductPurchase, credit.CreatedAt, AffiliateSaleWindow, userID)
		if err != nil {
			return nil, err
		}
		if purchase != nil {
			buyer, err := e.userRepo.GetByID(ctx, purchase.UserID)
			if err == nil {
				sale.BuyerUsername = buyer.Username
			} else if !errs.IsUserNotFoundError(err) {
				return nil, err
			}
		}

		sales = append(sales, sale)
	}
	return sales, nil
}
