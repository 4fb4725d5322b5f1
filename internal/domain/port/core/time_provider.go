package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain so that
// bonus-attribution windows and ledger timestamps are testable
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
