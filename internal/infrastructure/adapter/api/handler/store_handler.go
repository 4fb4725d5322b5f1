package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	domainerr "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	ledgerUseCase "github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/ledger"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
)

// StoreHandler handles affiliate-store HTTP requests
type StoreHandler struct {
	poster  *ledgerUseCase.Poster
	metrics *metrics.Metrics
	logger  coreport.Logger
}

// NewStoreHandler creates a new store handler instance
func NewStoreHandler(poster *ledgerUseCase.Poster, m *metrics.Metrics, logger coreport.Logger) *StoreHandler {
	return &StoreHandler{
		poster:  poster,
		metrics: m,
		logger:  logger,
	}
}

// Checkout handles the POST /store/:userId/checkout endpoint
func (h *StoreHandler) Checkout(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	items := make([]ledgerUseCase.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ledgerUseCase.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.poster.Checkout(c.Request.Context(), userID, items, req.AffiliateID)
	observePosting(h.metrics, "checkout", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		Total:         result.Total,
		ItemCount:     result.ItemCount,
		ResultBalance: result.ResultBalance,
	})
}

// PlaceOrder handles the POST /store/:userId/orders endpoint
func (h *StoreHandler) PlaceOrder(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	order, err := h.poster.PlaceOrder(c.Request.Context(), userID, req.ProductID, req.Quantity, req.AffiliateID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// CompleteOrders handles the POST /store/:userId/orders/complete endpoint
func (h *StoreHandler) CompleteOrders(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	result, err := h.poster.CompleteOrders(c.Request.Context(), userID)
	observePosting(h.metrics, "orders_complete", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompleteOrdersResponse{
		Completed:     result.Completed,
		Total:         result.Total,
		ResultBalance: result.ResultBalance,
	})
}

// CancelOrder handles the POST /store/:userId/orders/:orderId/cancel endpoint
func (h *StoreHandler) CancelOrder(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil || orderID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid order ID format",
		})
		return
	}

	if err := h.poster.CancelOrder(c.Request.Context(), userID, orderID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PurchasePackage handles the POST /store/:userId/packages/:packageId/purchase endpoint
func (h *StoreHandler) PurchasePackage(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	packageID, err := strconv.ParseUint(c.Param("packageId"), 10, 64)
	if err != nil || packageID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid package ID format",
		})
		return
	}

	result, err := h.poster.PurchasePackage(c.Request.Context(), userID, packageID)
	observePosting(h.metrics, "package_purchase", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PackagePurchaseResponse{
		PackageName:   result.PackageName,
		Price:         result.Price,
		ReferralPaid:  result.ReferralPaid,
		ResultBalance: result.ResultBalance,
	})
}

func toOrderResponse(order *entity.PendingOrder) dto.OrderResponse {
	return dto.OrderResponse{
		OrderID:   order.ID,
		ProductID: order.ProductID,
		Quantity:  order.Quantity,
		UnitPrice: entity.FormatCents(order.UnitPrice),
		Total:     order.FormattedTotal(),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
}
