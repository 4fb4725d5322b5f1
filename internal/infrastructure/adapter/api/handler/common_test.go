package handler

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	domainerr "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
)

func TestObservePosting(t *testing.T) {
	m := metrics.Registry("handlertest")

	t.Run("committed posting counts per operation", func(t *testing.T) {
		before := testutil.ToFloat64(m.LedgerPostings.WithLabelValues("checkout"))

		observePosting(m, "checkout", nil)

		assert.Equal(t, before+1, testutil.ToFloat64(m.LedgerPostings.WithLabelValues("checkout")))
	})

	t.Run("failed posting counts per error code", func(t *testing.T) {
		code := strconv.Itoa(domainerr.ErrorCode(domainerr.ErrInsufficientBalance))
		before := testutil.ToFloat64(m.PostingFailures.WithLabelValues(code))

		observePosting(m, "withdraw", domainerr.ErrInsufficientBalance)

		assert.Equal(t, before+1, testutil.ToFloat64(m.PostingFailures.WithLabelValues(code)))
		assert.Zero(t, testutil.ToFloat64(m.LedgerPostings.WithLabelValues("withdraw")))
	})

	t.Run("wrapped errors keep their code", func(t *testing.T) {
		wrapped := fmt.Errorf("completing orders: %w", domainerr.ErrInsufficientBalance)
		code := strconv.Itoa(domainerr.ErrorCode(domainerr.ErrInsufficientBalance))
		before := testutil.ToFloat64(m.PostingFailures.WithLabelValues(code))

		observePosting(m, "orders_complete", wrapped)

		assert.Equal(t, before+1, testutil.ToFloat64(m.PostingFailures.WithLabelValues(code)))
	})
}
