package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerr "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/persistence"
	ledgerUseCase "github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/ledger"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	poster     *ledgerUseCase.Poster
	walletRepo persistence.WalletRepository
	metrics    *metrics.Metrics
	logger     coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(
	poster *ledgerUseCase.Poster,
	walletRepo persistence.WalletRepository,
	m *metrics.Metrics,
	logger coreport.Logger,
) *WalletHandler {
	return &WalletHandler{
		poster:     poster,
		walletRepo: walletRepo,
		metrics:    m,
		logger:     logger,
	}
}

// GetBalance handles the GET /wallet/:userId/balance endpoint
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	wallet, err := h.walletRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if !domainerr.IsNotFoundError(err) {
			h.logger.Error("Error getting wallet balance", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: wallet.FormattedBalance(),
	})
}

// Topup handles the POST /wallet/:userId/topup endpoint
func (h *WalletHandler) Topup(c *gin.Context) {
	h.applyAmount(c, "topup", h.poster.Topup)
}

// Withdraw handles the POST /wallet/:userId/withdraw endpoint
func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.applyAmount(c, "withdraw", h.poster.Withdraw)
}

func (h *WalletHandler) applyAmount(c *gin.Context, operation string, op func(ctx context.Context, userID uint64, amount string) (string, error)) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	balance, err := op(c.Request.Context(), userID, req.Amount)
	observePosting(h.metrics, operation, err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceChangeResponse{
		UserID:        userID,
		ResultBalance: balance,
	})
}

// GetStatement handles the GET /wallet/:userId/statement endpoint
func (h *WalletHandler) GetStatement(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := h.poster.Statement(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.StatementEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.StatementEntryResponse{
			Reference: e.Reference,
			Type:      string(e.Type),
			Amount:    e.FormattedAmount(),
			CreatedAt: e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}
