package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func breakerConfig() Config {
	return Config{
		Enabled:          true,
		MinRequests:      2,
		FailureRatio:     0.5,
		OpenTimeout:      50 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(breakerConfig())

	errVendor := errors.New("vendor down")
	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "op", func(context.Context) error {
			return errVendor
		}, nil)
		if !errors.Is(err, errVendor) {
			t.Fatalf("expected vendor error on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	}, nil)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("IsCircuitOpen() = false for %v", err)
	}
}

func TestExecuteExemptedErrorsDoNotTrip(t *testing.T) {
	exec := NewExecutor(breakerConfig())

	errCaller := errors.New("bad input")
	isFailure := func(err error) bool { return !errors.Is(err, errCaller) }

	for i := 0; i < 5; i++ {
		err := exec.Execute(context.Background(), "op", func(context.Context) error {
			return errCaller
		}, isFailure)
		if !errors.Is(err, errCaller) {
			t.Fatalf("expected caller error on iteration %d, got %v", i, err)
		}
	}

	calls := 0
	err := exec.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, isFailure)
	if err != nil {
		t.Fatalf("expected closed circuit, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("operation not invoked, calls = %d", calls)
	}
}

func TestExecuteDisabledPassesThrough(t *testing.T) {
	exec := NewExecutor(Config{Enabled: false})

	errVendor := errors.New("vendor down")
	for i := 0; i < 10; i++ {
		err := exec.Execute(context.Background(), "op", func(context.Context) error {
			return errVendor
		}, nil)
		if !errors.Is(err, errVendor) {
			t.Fatalf("expected raw vendor error, got %v", err)
		}
	}

	if states := exec.States(); len(states) != 0 {
		t.Fatalf("disabled executor created breakers: %v", states)
	}
}

func TestStatesReportsPerOperation(t *testing.T) {
	exec := NewExecutor(breakerConfig())

	if err := exec.Execute(context.Background(), "parse", func(context.Context) error { return nil }, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	errVendor := errors.New("vendor down")
	for i := 0; i < 2; i++ {
		_ = exec.Execute(context.Background(), "classify", func(context.Context) error {
			return errVendor
		}, nil)
	}

	states := exec.States()
	if states["parse"] != "closed" {
		t.Fatalf("parse state = %q, want closed", states["parse"])
	}
	if states["classify"] != "open" {
		t.Fatalf("classify state = %q, want open", states["classify"])
	}
}

func TestExecuteNilCallback(t *testing.T) {
	exec := NewExecutor(breakerConfig())
	if err := exec.Execute(context.Background(), "op", nil, nil); err == nil {
		t.Fatalf("expected error for nil callback")
	}
}
