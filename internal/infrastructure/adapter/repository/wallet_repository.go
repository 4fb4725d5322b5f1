package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository implements persistence.WalletRepository using GORM.
// Debit re-reads the row under FOR UPDATE so the overdraw check always
// runs against the committed balance, not a stale entity snapshot.
type WalletRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWalletRepository creates a new WalletRepository instance
func NewWalletRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WalletRepository {
	return &WalletRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *WalletRepository) modelToEntity(m *model.Wallet) (*entity.Wallet, error) {
	wallet, err := entity.NewWallet(m.UserID, m.Balance, m.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to restore wallet entity", map[string]any{
			"user_id": m.UserID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: failed to restore wallet entity: %s", errs.ErrInternalServer, err.Error())
	}
	wallet.UpdatedAt = m.UpdatedAt
	return wallet, nil
}

// GetByUserID retrieves a user's wallet
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Wallet, error) {
	var walletModel model.Wallet
	result := r.db.WithContext(ctx).First(&walletModel, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWalletNotFound
		}
		r.logger.Error("Database error when getting wallet", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&walletModel)
}

// Create persists a new wallet row
func (r *WalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	walletModel := model.Wallet{
		UserID:    wallet.UserID,
		Balance:   wallet.Balance(),
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&walletModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateEntry
		}
		r.logger.Error("Database error when creating wallet", map[string]any{
			"user_id": wallet.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}

// Credit adds amountInCents to the user's wallet, creating the row when
// absent. The insert uses ON CONFLICT DO NOTHING so two racing credits
// to a brand-new wallet both fall through to the locked update.
func (r *WalletRepository) Credit(ctx context.Context, userID uint64, amountInCents int64) (*entity.Wallet, error) {
	now := r.timeProvider.Now()

	seed := model.Wallet{
		UserID:    userID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed)
	if result.Error != nil {
		r.logger.Error("Database error when seeding wallet", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	var walletModel model.Wallet
	result = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&walletModel, "user_id = ?", userID)
	if result.Error != nil {
		r.logger.Error("Database error when locking wallet for credit", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	walletModel.Balance += amountInCents
	walletModel.UpdatedAt = now

	result = r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    walletModel.Balance,
			"updated_at": walletModel.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Error("Database error when crediting wallet", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&walletModel)
}

// Debit subtracts amountInCents after re-checking the locked balance
func (r *WalletRepository) Debit(ctx context.Context, userID uint64, amountInCents int64) (*entity.Wallet, error) {
	var walletModel model.Wallet
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&walletModel, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWalletNotFound
		}
		r.logger.Error("Database error when locking wallet for debit", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if walletModel.Balance < amountInCents {
		r.logger.Warn("Insufficient balance for debit", map[string]any{
			"user_id":   userID,
			"balance":   entity.FormatCents(walletModel.Balance),
			"requested": entity.FormatCents(amountInCents),
		})
		return nil, errs.ErrInsufficientBalance
	}

	walletModel.Balance -= amountInCents
	walletModel.UpdatedAt = r.timeProvider.Now()

	result = r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    walletModel.Balance,
			"updated_at": walletModel.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Error("Database error when debiting wallet", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&walletModel)
}
