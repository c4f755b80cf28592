package fulfillment

import (
	"context"
	"errors"
	"testing"
	"time"

	"artify/internal/providers/style"
)

func TestGenerateUnitRetriesPrimaryBeforeFallback(t *testing.T) {
	transient := errors.New("502 from provider")
	gen := &fakeGenerator{name: "openai", errs: []error{transient, nil}}
	svc := newTestService(newFakeOrders(), gen, nil, &recordingNotifier{}, nil)

	outcome, err := svc.generateUnit(context.Background(), style.Request{OrderID: "o1", Unit: 0})
	if err != nil {
		t.Fatalf("generateUnit: %v", err)
	}
	if outcome.fallback {
		t.Fatal("fallback used although a primary retry succeeded")
	}
	if len(gen.calls) != 2 {
		t.Fatalf("primary calls = %d, want 2", len(gen.calls))
	}
}

func TestGenerateUnitNoFallbackWrapsLastError(t *testing.T) {
	transient := errors.New("502 from provider")
	gen := &fakeGenerator{name: "openai", errs: []error{transient, transient, transient}}
	svc := newTestService(newFakeOrders(), gen, nil, &recordingNotifier{}, nil)

	_, err := svc.generateUnit(context.Background(), style.Request{OrderID: "o1", Unit: 0})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, transient) {
		t.Fatalf("error chain lost the provider error: %v", err)
	}
	if len(gen.calls) != 3 {
		t.Fatalf("primary calls = %d, want 3", len(gen.calls))
	}
}

func TestGenerateUnitStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transient := errors.New("502 from provider")
	gen := &fakeGenerator{name: "openai", errs: []error{transient, transient, transient}}
	svc := newTestService(newFakeOrders(), gen, nil, &recordingNotifier{}, nil)

	cancel()
	_, err := svc.generateUnit(ctx, style.Request{OrderID: "o1", Unit: 0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("primary calls = %d, want 1 before cancel is noticed", len(gen.calls))
	}
}

func TestSleepCtx(t *testing.T) {
	if err := sleepCtx(context.Background(), 0); err != nil {
		t.Fatalf("zero duration: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled sleep returned %v", err)
	}
}
