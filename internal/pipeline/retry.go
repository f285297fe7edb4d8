package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/dgallion1/mdsumm/internal/llm"
)

const MaxRetries = 3

// backoffBase is the first retry delay; tests shrink it.
var backoffBase = time.Second

const maxBackoff = 30 * time.Second

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *llm.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := backoffBase << uint(attempt)
	if base > maxBackoff || base <= 0 {
		base = maxBackoff
	}
	if half := int64(base) / 2; half > 0 {
		return base + time.Duration(rand.Int64N(half))
	}
	return base
}

// attemptBackOff feeds Backoff into backoff.Retry.
type attemptBackOff struct {
	attempt int
}

func (b *attemptBackOff) NextBackOff() time.Duration {
	d := Backoff(b.attempt)
	b.attempt++
	return d
}

func (b *attemptBackOff) Reset() { b.attempt = 0 }

// withRetry runs fn up to MaxRetries times while it fails with a retryable
// error, sleeping Backoff between attempts.
func withRetry[T any](ctx context.Context, log *slog.Logger, op string, fn func() (T, error)) (T, error) {
	var zero T
	v, err := backoff.Retry(ctx, func() (T, error) {
		v, err := fn()
		if err != nil && !IsRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(&attemptBackOff{}),
		backoff.WithMaxTries(MaxRetries),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("retryable error", "op", op, "error", err, "in", next)
		}),
	)
	if err != nil {
		// The last attempt comes back still wrapped.
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		return zero, err
	}
	return v, nil
}
