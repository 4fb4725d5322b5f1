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

// OrderRepository implements persistence.OrderRepository using GORM
type OrderRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger}
}

func orderModelToEntity(m *model.PendingOrder) entity.PendingOrder {
	return entity.PendingOrder{
		ID:           m.ID,
		UserID:       m.UserID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalInCents: m.Total,
		AffiliateID:  m.AffiliateID,
		Status:       entity.OrderStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *OrderRepository) dbError(operation string, err error, orderID uint64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"order_id": orderID,
		"error":    err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new pending order
func (r *OrderRepository) Create(ctx context.Context, order *entity.PendingOrder) error {
	orderModel := model.PendingOrder{
		UserID:      order.UserID,
		ProductID:   order.ProductID,
		Quantity:    order.Quantity,
		UnitPrice:   order.UnitPrice,
		Total:       order.TotalInCents,
		AffiliateID: order.AffiliateID,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&orderModel)
	if result.Error != nil {
		return r.dbError("creating order", result.Error, 0)
	}

	order.ID = orderModel.ID
	r.logger.Info("Order created", map[string]any{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    entity.FormatCents(order.TotalInCents),
	})
	return nil
}

// GetByID retrieves one order
func (r *OrderRepository) GetByID(ctx context.Context, id uint64) (*entity.PendingOrder, error) {
	var orderModel model.PendingOrder
	result := r.db.WithContext(ctx).First(&orderModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, r.dbError("getting order", result.Error, id)
	}

	order := orderModelToEntity(&orderModel)
	return &order, nil
}

// ListPendingByUser returns a user's pending_payment orders oldest
// first. Rows come back locked when called inside a transaction so a
// racing settlement cannot pay them twice.
func (r *OrderRepository) ListPendingByUser(ctx context.Context, userID uint64) ([]entity.PendingOrder, error) {
	var orderModels []model.PendingOrder
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND status = ?", userID, string(entity.OrderPendingPayment)).
		Order("created_at ASC").
		Find(&orderModels)
	if result.Error != nil {
		return nil, r.dbError("listing pending orders", result.Error, 0)
	}

	orders := make([]entity.PendingOrder, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, orderModelToEntity(&orderModels[i]))
	}
	return orders, nil
}

// Update persists status changes of an existing order
func (r *OrderRepository) Update(ctx context.Context, order *entity.PendingOrder) error {
	result := r.db.WithContext(ctx).Model(&model.PendingOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":     string(order.Status),
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return r.dbError("updating order", result.Error, order.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrOrderNotFound
	}
	return nil
}
