package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrMaxRetries indicates that all retry attempts have been exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// WithRetry executes operation until it succeeds, returns a non-retryable
// error, the context ends, or MaxAttempts is reached.
func WithRetry(ctx context.Context, operation func() error, opts RetryOptions) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = opts.InitialDelay
	expo.MaxInterval = opts.MaxDelay
	expo.Multiplier = opts.Multiplier
	expo.MaxElapsedTime = 0

	policy := backoff.WithContext(
		backoff.WithMaxRetries(expo, uint64(opts.MaxAttempts-1)),
		ctx,
	)

	attempt := 0
	var lastErr error
	err := backoff.RetryNotify(func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		var retryableErr *RetryableError
		if errors.As(err, &retryableErr) && !retryableErr.Retryable {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, delay time.Duration) {
		slog.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", delay,
			"error", err)
	})
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) && !retryableErr.Retryable {
		return retryableErr.Err
	}

	if attempt >= opts.MaxAttempts {
		return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, opts.MaxAttempts, lastErr)
	}
	return err
}
