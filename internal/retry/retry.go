// Package retry runs idempotent record-store operations with bounded exponential backoff.
// Inserts and payment-gateway calls must not go through it.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	Attempts        uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var DefaultPolicy = Policy{
	Attempts:        3,
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     time.Second,
}

// Do runs op under DefaultPolicy.
func Do(ctx context.Context, op func() error) error {
	return DefaultPolicy.Do(ctx, op)
}

// Do runs op until it succeeds, returns a Permanent error, the attempts are used up,
// or ctx is done. The last error is returned.
func (p Policy) Do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = 0

	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, attempts-1), ctx))
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
