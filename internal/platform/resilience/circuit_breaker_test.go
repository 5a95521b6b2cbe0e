package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 8, 16, 19, 0, 0, 0, time.UTC))
	b := NewCircuitBreakerWithClock(2, 5*time.Second, 1, mock)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	mock.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	mock := clock.NewMock()
	b := NewCircuitBreakerWithClock(1, time.Minute, 1, mock)

	b.RecordFailure()
	mock.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe allowed, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe rejected, got %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopened breaker, got %s", state)
	}
}

func TestCircuitBreaker_NilIsPassThrough(t *testing.T) {
	var b *CircuitBreaker
	if err := b.Allow(); err != nil {
		t.Fatalf("nil breaker must allow, got %v", err)
	}
	b.RecordFailure()
	if b.State() != CircuitStateClosed {
		t.Fatalf("nil breaker must report closed")
	}
	if NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}) != nil {
		t.Fatalf("disabled config must yield nil breaker")
	}
}

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultCircuitBreakerConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if err := (CircuitBreakerConfig{Enabled: false}).Validate(); err != nil {
		t.Fatalf("disabled config must validate: %v", err)
	}

	bad := DefaultCircuitBreakerConfig()
	bad.HalfOpenMaxReq = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for zero half-open limit")
	}
}

func TestCircuitBreakerConfig_NormalizedFillsDefaults(t *testing.T) {
	t.Parallel()

	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: 3}.normalized()
	if got.FailureThreshold != 3 {
		t.Fatalf("explicit threshold overwritten: %d", got.FailureThreshold)
	}
	if got.OpenTimeout != 30*time.Second || got.HalfOpenMaxReq != 2 {
		t.Fatalf("defaults not applied: %+v", got)
	}
}
