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
)

// ProductRepository implements persistence.ProductRepository using GORM
type ProductRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

// GetByID retrieves a product regardless of status
func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*entity.Product, error) {
	var productModel model.Product
	result := r.db.WithContext(ctx).First(&productModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProductUnavailable
		}
		r.logger.Error("Database error when getting product", map[string]any{
			"product_id": id,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return &entity.Product{
		ID:            productModel.ID,
		Name:          productModel.Name,
		PriceInCents:  productModel.Price,
		AffiliateRate: productModel.AffiliateRate,
		Status:        entity.ProductStatus(productModel.Status),
		CreatedAt:     productModel.CreatedAt,
		UpdatedAt:     productModel.UpdatedAt,
	}, nil
}

// PackageRepository implements persistence.PackageRepository using GORM
type PackageRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPackageRepository creates a new PackageRepository instance
func NewPackageRepository(db *gorm.DB, logger coreport.Logger) *PackageRepository {
	return &PackageRepository{db: db, logger: logger}
}

// GetByID retrieves a package
func (r *PackageRepository) GetByID(ctx context.Context, id uint64) (*entity.Package, error) {
	var packageModel model.Package
	result := r.db.WithContext(ctx).First(&packageModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPackageNotFound
		}
		r.logger.Error("Database error when getting package", map[string]any{
			"package_id": id,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return &entity.Package{
		ID:           packageModel.ID,
		Name:         packageModel.Name,
		PriceInCents: packageModel.Price,
		PV:           packageModel.PV,
		DailyMax:     packageModel.DailyMax,
		PairRate:     packageModel.PairRate,
		ReferralRate: packageModel.ReferralRate,
		CreatedAt:    packageModel.CreatedAt,
		UpdatedAt:    packageModel.UpdatedAt,
	}, nil
}

// ListSchedule returns a package's schedule entries of the given kind
// ordered by level
func (r *PackageRepository) ListSchedule(ctx context.Context, packageID uint64, kind entity.ScheduleKind) ([]entity.ScheduleEntry, error) {
	var scheduleModels []model.ScheduleEntry
	result := r.db.WithContext(ctx).
		Where("package_id = ? AND kind = ?", packageID, string(kind)).
		Order("level ASC").
		Find(&scheduleModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing schedule", map[string]any{
			"package_id": packageID,
			"kind":       string(kind),
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	entries := make([]entity.ScheduleEntry, 0, len(scheduleModels))
	for _, m := range scheduleModels {
		entries = append(entries, entity.ScheduleEntry{
			PackageID:   m.PackageID,
			Kind:        entity.ScheduleKind(m.Kind),
			Level:       m.Level,
			PVTRequired: m.PVTRequired,
			GVTRequired: m.GVTRequired,
			Rate:        m.Rate,
		})
	}
	return entries, nil
}
