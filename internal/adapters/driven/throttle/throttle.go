// Package throttle provides rate policies for calls against
// rate-limited platform services.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/morphuslabs/podseek/internal/core/ports/driven"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Throttle = (*Limiter)(nil)
	_ driven.Throttle = NoOp{}
)

// DefaultInterval is the default spacing between platform calls.
const DefaultInterval = time.Second

// Limiter paces calls at a fixed minimum interval. A single Limiter is
// shared across a batch so the budget is global, not per item.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a throttle allowing one call per interval.
// Non-positive intervals fall back to DefaultInterval.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// NoOp never delays. Used in tests.
type NoOp struct{}

// Wait returns immediately.
func (NoOp) Wait(_ context.Context) error { return nil }
