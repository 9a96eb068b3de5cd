package resilience

import (
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream failed")

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker("test", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, nil)

	for i := 0; i < 2; i++ {
		if err := b.Do(func() error { return errUpstream }); !errors.Is(err, errUpstream) {
			t.Fatalf("attempt %d: expected upstream error, got %v", i, err)
		}
	}
	if state := b.State(); state != "open" {
		t.Fatalf("expected open state, got %s", state)
	}

	called := false
	err := b.Do(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if called {
		t.Fatalf("expected call to be short-circuited")
	}
}

func TestBreaker_IgnoresNonFailures(t *testing.T) {
	errBadRequest := errors.New("bad request")
	b := NewBreaker("test", CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}, func(err error) bool {
		return !errors.Is(err, errBadRequest)
	})

	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return errBadRequest }); !errors.Is(err, errBadRequest) {
			t.Fatalf("expected bad request error, got %v", err)
		}
	}
	if state := b.State(); state != "closed" {
		t.Fatalf("expected breaker to stay closed, got %s", state)
	}
}

func TestBreaker_Disabled(t *testing.T) {
	b := NewBreaker("test", CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}, nil)
	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return errUpstream }); !errors.Is(err, errUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	}
	if state := b.State(); state != "disabled" {
		t.Fatalf("expected disabled, got %s", state)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: -2}.withDefaults()
	if got.FailureThreshold != 5 || got.OpenTimeout != 30*time.Second || got.HalfOpenMaxReq != 1 {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	custom := CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Second, HalfOpenMaxReq: 3}.withDefaults()
	if custom.FailureThreshold != 2 || custom.OpenTimeout != time.Second || custom.HalfOpenMaxReq != 3 {
		t.Fatalf("explicit values overwritten: %+v", custom)
	}
}
