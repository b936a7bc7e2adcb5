package retry

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
)

// RetryConfig controls exponential backoff for backend calls
type RetryConfig struct {
	MaxRetries      int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	JitterFactor    float64 // fraction of the delay added as random jitter
	LogRetryAttempt bool
	// ShouldRetry decides whether err on the given attempt (1-based) is retried; nil retries everything
	ShouldRetry func(err error, attempt int) bool
}

// DefaultRetryConfig suits interactive SDK calls: a few quick attempts rather than long waits
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:      3,
		InitialDelay:    500 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffFactor:   2.0,
		JitterFactor:    0.2,
		LogRetryAttempt: true,
	}
}

func (c *RetryConfig) Validate() error {
	switch {
	case c.MaxRetries < 1:
		return errors.New("MaxRetries must be >= 1")
	case c.InitialDelay <= 0:
		return errors.New("InitialDelay must be positive")
	case c.MaxDelay < c.InitialDelay:
		return errors.New("MaxDelay must be >= InitialDelay")
	case c.BackoffFactor < 1.0:
		return errors.New("BackoffFactor must be >= 1.0")
	case c.JitterFactor < 0 || c.JitterFactor > 1.0:
		return errors.New("JitterFactor must be between 0.0 and 1.0")
	}
	return nil
}

// NonRetryable marks an error that must stop the retry loop immediately.
type NonRetryable struct {
	Err error
}

func (e *NonRetryable) Error() string { return e.Err.Error() }
func (e *NonRetryable) Unwrap() error { return e.Err }

// Permanent wraps err so that Retry returns it without further attempts
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &NonRetryable{Err: err}
}

func secureFraction() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0.5
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// withJitter returns base plus up to jitterFactor*base of random extra wait
func withJitter(base time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return base
	}
	return base + time.Duration(jitterFactor*float64(base)*secureFraction())
}

func nextDelay(current time.Duration, factor float64, max time.Duration) time.Duration {
	next := time.Duration(float64(current) * factor)
	if next > max {
		return max
	}
	return next
}

// Retry runs op until it succeeds, returns a Permanent error, is rejected by ShouldRetry,
// exhausts MaxRetries, or ctx is done.
func Retry[T any](ctx context.Context, op func() (T, error), cfg *RetryConfig, logger logging.Logger) (T, error) {
	var zero T

	if cfg == nil {
		cfg = DefaultRetryConfig()
	}
	if err := cfg.Validate(); err != nil {
		return zero, fmt.Errorf("invalid retry config: %w", err)
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var permanent *NonRetryable
		if errors.As(err, &permanent) {
			return zero, permanent.Err
		}
		if cfg.ShouldRetry != nil && !cfg.ShouldRetry(err, attempt) {
			return zero, err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		wait := withJitter(delay, cfg.JitterFactor)
		if cfg.LogRetryAttempt {
			logger.Warnf("Attempt %d/%d failed: %v. Retrying in %v", attempt, cfg.MaxRetries, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			delay = nextDelay(delay, cfg.BackoffFactor, cfg.MaxDelay)
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}

	return zero, fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxRetries, lastErr)
}

// RetryFunc is Retry for operations without a result value
func RetryFunc(ctx context.Context, op func() error, cfg *RetryConfig, logger logging.Logger) error {
	_, err := Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	}, cfg, logger)
	return err
}
