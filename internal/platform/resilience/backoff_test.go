package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
)

func TestExponentialBackoff(t *testing.T) {
	cases := []struct {
		attempt int
		max     time.Duration
		want    time.Duration
	}{
		{attempt: 0, want: time.Second},
		{attempt: 1, want: 2 * time.Second},
		{attempt: 3, want: 8 * time.Second},
		{attempt: 5, max: 10 * time.Second, want: 10 * time.Second},
		{attempt: -1, want: time.Second},
	}
	for _, tc := range cases {
		if got := ExponentialBackoff(time.Second, tc.attempt, tc.max); got != tc.want {
			t.Fatalf("attempt=%d max=%s: want %s, got %s", tc.attempt, tc.max, tc.want, got)
		}
	}
	if got := ExponentialBackoff(0, 3, 0); got != 0 {
		t.Fatalf("expected zero backoff for zero base, got %s", got)
	}
}

func TestClockSleeper_ContextCanceled(t *testing.T) {
	sleep := ClockSleeper(clock.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestClockSleeper_ZeroDuration(t *testing.T) {
	sleep := ClockSleeper(nil)
	if err := sleep(context.Background(), 0); err != nil {
		t.Fatalf("expected immediate return, got %v", err)
	}
}
