package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name             string
		matchesPerSecond float64
		wantUnlimited    bool
	}{
		{name: "unlimited_zero", matchesPerSecond: 0, wantUnlimited: true},
		{name: "unlimited_negative", matchesPerSecond: -3, wantUnlimited: true},
		{name: "one_per_second", matchesPerSecond: 1},
		{name: "hundred_per_second", matchesPerSecond: 100},
		{name: "fractional", matchesPerSecond: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := New(tt.matchesPerSecond)

			if got := limiter.Unlimited(); got != tt.wantUnlimited {
				t.Errorf("Unlimited() = %v, want %v", got, tt.wantUnlimited)
			}

			want := tt.matchesPerSecond
			if tt.wantUnlimited {
				want = 0
			}
			if got := limiter.Limit(); got != want {
				t.Errorf("Limit() = %f, want %f", got, want)
			}
		})
	}
}

func TestLimiter_Wait(t *testing.T) {
	t.Run("unlimited_no_wait", func(t *testing.T) {
		limiter := New(0)
		start := time.Now()
		for range 50 {
			if err := limiter.Wait(context.Background()); err != nil {
				t.Fatalf("Wait() failed: %v", err)
			}
		}
		if d := time.Since(start); d > 50*time.Millisecond {
			t.Errorf("unlimited limiter took too long: %v", d)
		}
	})

	t.Run("limited_spaces_matches", func(t *testing.T) {
		limiter := New(20)
		start := time.Now()
		for range 3 {
			if err := limiter.Wait(context.Background()); err != nil {
				t.Fatalf("Wait() failed: %v", err)
			}
		}
		// first immediate, then two 50ms gaps
		if d := time.Since(start); d < 80*time.Millisecond {
			t.Errorf("limited limiter returned too early: %v", d)
		}
	})

	t.Run("context_cancellation", func(t *testing.T) {
		limiter := New(0.5)
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("first Wait() failed: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := limiter.Wait(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() error = %v, want %v", err, context.Canceled)
		}
	})
}
