// Package quota enforces the per-caller daily usage allowance.
//
// Usage is counted in fixed windows: the window start is wall-clock time
// truncated by the window length (UTC), and every check increments the
// counter whether or not the call ends up allowed. A rejected call
// therefore still counts toward the window; the charge is never refunded.
package quota

import (
	"context"
	"fmt"
	"time"
)

// Counter is the shared counter store behind the gate. Incr atomically
// increments the counter for key in the current window and returns the
// new count together with the window's reset time.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// Status reports the outcome of a quota check.
type Status struct {
	Allowed    bool
	Used       int64
	Remaining  int64
	Limit      int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Gate tracks per-identity usage against a fixed allowance.
type Gate struct {
	counter Counter
	limit   int64
	window  time.Duration
}

// NewGate creates a gate over the given counter store.
func NewGate(counter Counter, limit int64, window time.Duration) *Gate {
	return &Gate{counter: counter, limit: limit, window: window}
}

// Check consumes one slot for identity in the current window and reports
// whether the call is allowed. A counter store failure is surfaced as an
// error, never as quota-exceeded.
func (g *Gate) Check(ctx context.Context, identity string) (Status, error) {
	count, resetAt, err := g.counter.Incr(ctx, identity, g.window)
	if err != nil {
		return Status{}, fmt.Errorf("quota counter store: %w", err)
	}

	remaining := g.limit - count
	if remaining < 0 {
		remaining = 0
	}

	status := Status{
		Allowed:   count <= g.limit,
		Used:      count,
		Remaining: remaining,
		Limit:     g.limit,
		ResetAt:   resetAt,
	}
	if !status.Allowed {
		retryAfter := time.Until(resetAt)
		if retryAfter < 0 {
			retryAfter = 0
		}
		status.RetryAfter = retryAfter
	}

	return status, nil
}
