// Package retry holds the bounded exponential-backoff policy applied to
// outbound calls.
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy describes how many times a call is attempted and how long to wait
// between attempts. Waits start at Base, double each time and never exceed Cap.
type Policy struct {
	MaxAttempts int
	Base        time.Duration
	Cap         time.Duration
}

// DefaultPolicy is three attempts with 1s, 2s waits (capped at 8s).
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Base:        1 * time.Second,
		Cap:         8 * time.Second,
	}
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Backoff builds a fresh go-retry backoff for one call. Backoffs are stateful,
// so each call needs its own.
func (p Policy) Backoff() goretry.Backoff {
	base := p.Base
	if base <= 0 {
		base = time.Millisecond
	}
	b := goretry.NewExponential(base)
	if p.Cap > 0 {
		b = goretry.WithCappedDuration(p.Cap, b)
	}
	return goretry.WithMaxRetries(uint64(p.attempts()-1), b)
}

// Schedule lists the waits the policy would apply between attempts.
func (p Policy) Schedule() []time.Duration {
	b := p.Backoff()
	var out []time.Duration
	for {
		next, stop := b.Next()
		if stop {
			return out
		}
		out = append(out, next)
	}
}

// Do runs fn until it succeeds or the attempts are used up. Every error is
// treated as retryable; the last one is returned unwrapped. Cancelling ctx
// stops waiting and returns ctx.Err().
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return goretry.Do(ctx, p.Backoff(), func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return goretry.RetryableError(err)
		}
		return nil
	})
}
