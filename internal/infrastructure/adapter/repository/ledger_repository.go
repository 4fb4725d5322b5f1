package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// LedgerRepository implements persistence.LedgerRepository using GORM
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func ledgerModelToEntity(m *model.LedgerEntry) entity.LedgerEntry {
	return entity.LedgerEntry{
		ID:            m.ID,
		Reference:     m.Reference,
		UserID:        m.UserID,
		Type:          entity.EntryType(m.Type),
		AmountInCents: m.Amount,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *LedgerRepository) dbError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create appends one immutable ledger row
func (r *LedgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := model.LedgerEntry{
		Reference: entry.Reference,
		UserID:    entry.UserID,
		Type:      string(entry.Type),
		Amount:    entry.AmountInCents,
		CreatedAt: entry.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&entryModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate ledger reference", map[string]any{
				"reference": entry.Reference,
				"user_id":   entry.UserID,
			})
			return errs.ErrDuplicateEntry
		}
		return r.dbError("creating ledger entry", result.Error)
	}

	entry.ID = entryModel.ID
	return nil
}

// SumByType returns the signed sum of a user's rows of the given type
func (r *LedgerRepository) SumByType(ctx context.Context, userID uint64, entryType entity.EntryType) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("user_id = ? AND type = ?", userID, string(entryType)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, r.dbError("summing ledger entries", result.Error)
	}
	return total, nil
}

// SumByTypeSince is SumByType restricted to rows created at or after since
func (r *LedgerRepository) SumByTypeSince(ctx context.Context, userID uint64, entryType entity.EntryType, since time.Time) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, string(entryType), since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, r.dbError("summing ledger entries since", result.Error)
	}
	return total, nil
}

// FirstEntryTime returns the oldest created_at among a user's rows of
// the given type, nil when the user has none
func (r *LedgerRepository) FirstEntryTime(ctx context.Context, userID uint64, entryType entity.EntryType) (*time.Time, error) {
	var entryModel model.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, string(entryType)).
		Order("created_at ASC").
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.dbError("finding first ledger entry", result.Error)
	}
	return &entryModel.CreatedAt, nil
}

// ListByType returns a user's rows of the given type, newest first
func (r *LedgerRepository) ListByType(ctx context.Context, userID uint64, entryType entity.EntryType, limit int) ([]entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, string(entryType)).
		Order("created_at DESC").
		Limit(limit).
		Find(&entryModels)
	if result.Error != nil {
		return nil, r.dbError("listing ledger entries by type", result.Error)
	}

	entries := make([]entity.LedgerEntry, 0, len(entryModels))
	for i := range entryModels {
		entries = append(entries, ledgerModelToEntity(&entryModels[i]))
	}
	return entries, nil
}

// ListRecent returns a user's most recent rows of any type, newest first
func (r *LedgerRepository) ListRecent(ctx context.Context, userID uint64, limit int) ([]entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entryModels)
	if result.Error != nil {
		return nil, r.dbError("listing recent ledger entries", result.Error)
	}

	entries := make([]entity.LedgerEntry, 0, len(entryModels))
	for i := range entryModels {
		entries = append(entries, ledgerModelToEntity(&entryModels[i]))
	}
	return entries, nil
}

// FindPurchaseAround returns the debit row of the given type from a user
// other than excludeUserID closest to the anchor inside the window, nil
// when none matches
func (r *LedgerRepository) FindPurchaseAround(ctx context.Context, entryType entity.EntryType, anchor time.Time, window time.Duration, excludeUserID uint64) (*entity.LedgerEntry, error) {
	from := anchor.Add(-window)
	to := anchor.Add(window)

	var entryModels []model.LedgerEntry
	result := r.db.WithContext(ctx).
		Where("type = ? AND user_id <> ? AND amount < 0 AND created_at BETWEEN ? AND ?",
			string(entryType), excludeUserID, from, to).
		Order("created_at ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, r.dbError("finding purchase around anchor", result.Error)
	}
	if len(entryModels) == 0 {
		return nil, nil
	}

	// Nearest to the anchor wins, not merely the oldest in range.
	best := 0
	bestDist := absDuration(entryModels[0].CreatedAt.Sub(anchor))
	for i := 1; i < len(entryModels); i++ {
		if d := absDuration(entryModels[i].CreatedAt.Sub(anchor)); d < bestDist {
			best, bestDist = i, d
		}
	}

	entry := ledgerModelToEntity(&entryModels[best])
	return &entry, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
