package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerr "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/dto"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
)

// observePosting records the outcome of a wallet-moving operation.
// Committed postings count per operation, rollbacks count per error
// code so both label sets stay bounded.
func observePosting(m *metrics.Metrics, operation string, err error) {
	if err != nil {
		m.PostingFailures.WithLabelValues(strconv.Itoa(domainerr.ErrorCode(err))).Inc()
		return
	}
	m.LedgerPostings.WithLabelValues(operation).Inc()
}

// parseUserID extracts and validates the userId path parameter. A zero
// or malformed id is answered here and false is returned.
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}

// httpStatus maps domain errors to HTTP status codes
func httpStatus(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidQuantity),
		errors.Is(err, domainerr.ErrEmptyCart),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrProductUnavailable),
		errors.Is(err, domainerr.ErrOrderNotPending),
		errors.Is(err, domainerr.ErrDuplicateEntry):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error body for a domain error
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
