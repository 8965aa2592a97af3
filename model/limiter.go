package model

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// CallLimiter wraps a Completer and enforces a maximum number of completion
// calls. A zero max allows unlimited calls. One CallLimiter is created per
// request so a runaway prompt loop cannot exhaust the provider quota.
type CallLimiter struct {
	inner Completer
	max   int

	mu    sync.Mutex
	count int
}

// NewCallLimiter wraps inner with a per-run call budget.
func NewCallLimiter(inner Completer, max int) *CallLimiter {
	return &CallLimiter{inner: inner, max: max}
}

// Complete implements Completer, counting the call before delegating.
func (l *CallLimiter) Complete(ctx context.Context, prompt string) (string, error) {
	l.mu.Lock()
	l.count++
	if l.max > 0 && l.count > l.max {
		count := l.count
		l.mu.Unlock()
		return "", fmt.Errorf("exceeded max completion calls: %d > %d", count, l.max)
	}
	l.mu.Unlock()

	return l.inner.Complete(ctx, prompt)
}

// Info implements Completer.
func (l *CallLimiter) Info() Info { return l.inner.Info() }

// Count returns the number of calls made so far.
func (l *CallLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Throttled wraps a Completer with a process-wide token-bucket rate limiter
// so concurrent requests cannot exceed the provider's rate limit. Waiting
// respects context cancellation.
type Throttled struct {
	inner   Completer
	limiter *rate.Limiter
}

// NewThrottled wraps inner allowing rps calls per second with the given
// burst. A non-positive rps disables throttling.
func NewThrottled(inner Completer, rps float64, burst int) *Throttled {
	var lim *rate.Limiter
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &Throttled{inner: inner, limiter: lim}
}

// Complete implements Completer, waiting for a rate token first.
func (t *Throttled) Complete(ctx context.Context, prompt string) (string, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}
	return t.inner.Complete(ctx, prompt)
}

// Info implements Completer.
func (t *Throttled) Info() Info { return t.inner.Info() }
