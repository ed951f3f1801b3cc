package apify

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestRetryEventualSuccess(t *testing.T) {
	r := retryConfig{maxAttempts: 3, baseDelay: time.Millisecond}

	calls := 0
	err := r.do(context.Background(), "op", func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	r := retryConfig{maxAttempts: 2, baseDelay: time.Millisecond}

	calls := 0
	err := r.do(context.Background(), "op", func() error {
		calls++
		return fmt.Errorf("persistent")
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	r := retryConfig{maxAttempts: 5, baseDelay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := r.do(ctx, "op", func() error {
		calls++
		return fmt.Errorf("transient")
	})

	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 attempt before cancel, got %d", calls)
	}
}
