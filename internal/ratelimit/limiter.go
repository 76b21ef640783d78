package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// MinWindow is the floor applied to configured window lengths.
const MinWindow = 10 * time.Second

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed   bool
	Remaining int
	// ResetIn is the number of seconds until the current window ends.
	ResetIn int
}

// FixedWindowLimiter counts requests per client within discrete,
// non-overlapping time buckets backed by a shared counter store. The
// read-increment-write sequence is not atomic and a client can burst up to
// twice the budget across a window boundary; both are accepted properties
// of the fixed-window scheme.
type FixedWindowLimiter struct {
	store  CounterStore
	window time.Duration
	max    int64
	now    func() time.Time
}

// LimiterOption configures a FixedWindowLimiter.
type LimiterOption func(*FixedWindowLimiter)

// WithClock overrides the limiter's time source.
func WithClock(now func() time.Time) LimiterOption {
	return func(l *FixedWindowLimiter) { l.now = now }
}

// NewFixedWindowLimiter creates a limiter admitting max requests per
// window. Floors are applied: window is at least MinWindow, max at least 1.
func NewFixedWindowLimiter(store CounterStore, window time.Duration, max int64, opts ...LimiterOption) *FixedWindowLimiter {
	if window < MinWindow {
		window = MinWindow
	}

	if max < 1 {
		max = 1
	}

	l := &FixedWindowLimiter{
		store:  store,
		window: window,
		max:    max,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Admit checks whether a request from clientAddr fits in the current
// window, incrementing the window counter when it does.
func (l *FixedWindowLimiter) Admit(ctx context.Context, clientAddr string) (Decision, error) {
	now := l.now().Unix()
	windowSecs := int64(l.window / time.Second)
	bucket := now / windowSecs
	resetIn := int((bucket+1)*windowSecs - now)

	key := fmt.Sprintf("rl:%s:%d", clientAddr, bucket)

	count, err := l.store.Get(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("read window counter: %w", err)
	}

	if count >= l.max {
		return Decision{Allowed: false, Remaining: 0, ResetIn: resetIn}, nil
	}

	ttl := time.Duration(resetIn) * time.Second
	if ttl < time.Second {
		ttl = time.Second
	}

	count++
	if err := l.store.Set(ctx, key, count, ttl); err != nil {
		return Decision{}, fmt.Errorf("write window counter: %w", err)
	}

	return Decision{
		Allowed:   true,
		Remaining: int(l.max - count),
		ResetIn:   resetIn,
	}, nil
}
