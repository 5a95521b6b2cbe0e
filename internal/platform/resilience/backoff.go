package resilience

import (
	"context"
	"time"

	"github.com/itbasis/go-clock"
)

// ExponentialBackoff returns base * 2^attempt, capped at max when max > 0.
func ExponentialBackoff(base time.Duration, attempt int, max time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	if attempt < 0 {
		attempt = 0
	}
	wait := base
	for i := 0; i < attempt; i++ {
		wait *= 2
		if max > 0 && wait >= max {
			return max
		}
	}
	if max > 0 && wait > max {
		return max
	}
	return wait
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// ClockSleeper waits on clk, returning ctx.Err() if ctx ends first.
func ClockSleeper(clk clock.Clock) Sleeper {
	if clk == nil {
		clk = clock.New()
	}
	return func(ctx context.Context, d time.Duration) error {
		if d <= 0 {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clk.After(d):
			return nil
		}
	}
}
