package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, timeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      timeout,
		HalfOpenMaxReq:   1,
	})
	now := time.Date(2023, 9, 10, 17, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 5*time.Second)

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

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_DoCountsOnlyUpstreamFailures(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute)
	errBadRequest := errors.New("bad request")
	errTransient := errors.New("transient")
	transient := func(err error) bool { return errors.Is(err, errTransient) }

	if err := b.Do(func() error { return errBadRequest }, transient); !errors.Is(err, errBadRequest) {
		t.Fatalf("expected caller error to pass through, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("client errors must not open the breaker, got %s", state)
	}

	if err := b.Do(func() error { return errTransient }, transient); !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	called := false
	err := b.Do(func() error { called = true; return nil }, transient)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open breaker to short-circuit, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_DisabledNeverOpens(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 5; i++ {
		_ = b.Do(func() error { return errors.New("boom") }, nil)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("disabled breaker rejected a call: %v", err)
	}
}
