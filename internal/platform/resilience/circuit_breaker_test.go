package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC))
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	}, clock)

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

	clock.Advance(6 * time.Second)
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

func TestCircuitBreaker_Execute(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute}, clock)
	boom := errors.New("broker down")

	if err := b.Execute(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run while open")
	}
}

func TestCircuitBreaker_DisabledAlwaysAllows(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}, clockwork.NewFakeClock())
	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("disabled breaker must allow, got %v", err)
	}
}

func TestCircuitBreakerConfig_NormalizedFillsDefaults(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: -1}.normalized()
	want := CircuitBreakerConfig{Enabled: true, FailureThreshold: 5, OpenTimeout: 10 * time.Second, HalfOpenMaxReq: 1}
	if got != want {
		t.Fatalf("unexpected config: got=%+v want=%+v", got, want)
	}
}
