package backoff

import (
	"context"
	"math"
	"time"
)

type Strategy interface {
	Duration(count int, start time.Duration) time.Duration
}

// Backoff sleeps for a growing duration between attempts, capped at limit
// when limit is positive
type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	count        int
	strategy     Strategy
}

func NewBackoff(strategy Strategy, start time.Duration, limit time.Duration) *Backoff {
	b := Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return &b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.LastDuration = 0
	b.NextDuration = b.next()
}

// Backoff blocks for NextDuration. It returns the context error if ctx ends first.
func (b *Backoff) Backoff(ctx context.Context) error {
	timer := time.NewTimer(b.NextDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	b.count++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.next()
	return nil
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.count, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(count int, start time.Duration) time.Duration {
	return time.Duration(int64(math.Pow(2, float64(count)))) * start
}

func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(exponential{}, start, limit)
}

type linear struct{}

func (linear) Duration(count int, start time.Duration) time.Duration {
	return time.Duration(count+1) * start
}

func NewLinear(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(linear{}, start, limit)
}

// Retry calls fn up to attempts times, sleeping with b between calls. An
// error for which retryable returns false is returned immediately.
func Retry(ctx context.Context, b *Backoff, attempts int, retryable func(error) bool, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		if berr := b.Backoff(ctx); berr != nil {
			return err
		}
	}
	return err
}
