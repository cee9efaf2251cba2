// Package retry provides a configurable retry mechanism for operations that may
// fail temporarily, such as ledger RPC calls. It wraps the retry-go package from
// Avast and exposes a small interface with functional options.
//
// Delays grow exponentially between attempts. Context cancellation stops the
// retries immediately, and errors marked with Permanent are never retried.
//
// Basic usage:
//
//	r := retry.New(retry.WithAttempts(4))
//	height, err := retry.Do(ctx, r, func() (uint64, error) {
//	    return client.BlockNumber(ctx)
//	})
package retry

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry defines the interface for retry operations.
type Retry interface {
	// Execute runs operation until it succeeds, the attempts are exhausted,
	// the error is permanent or ctx is done. The operation must be safe to
	// call multiple times.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint          // maximum number of attempts, including the first one
	delay       time.Duration // base delay between attempts
	maxDelay    time.Duration // cap for the exponential delay
	lastErrOnly bool          // whether to return only the last error
}

// Option defines a functional option for configuring the retry mechanism.
type Option func(*config)

// retrier implements Retry using retry-go.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New creates a Retry configured with the provided options.
//
// Defaults: 3 attempts, 1s base delay, 5s max delay, last error only.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

// Execute implements Retry.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
		retry.RetryIf(isRetryable),
	)
}

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent wraps err so that Execute returns it without further attempts.
// errors.Is and errors.As still see the wrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// isRetryable reports whether err deserves another attempt.
func isRetryable(err error) bool {
	var p permanentError
	if errors.As(err, &p) {
		return false
	}

	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Do runs operation through r and returns its value on success.
func Do[T any](ctx context.Context, r Retry, operation func() (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, func() error {
		v, err := operation()
		if err != nil {
			return err
		}

		result = v
		return nil
	})

	return result, err
}

// WithAttempts sets the maximum number of attempts (including the first one).
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between attempts.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly sets whether only the error of the final attempt is
// returned (true) or all attempt errors are combined (false).
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
