package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
)

func fastConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:    3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestRetry_SucceedsAfterFailures_ReturnsResult(t *testing.T) {
	calls := 0
	op := func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "ok", nil
	}

	result, err := Retry(context.Background(), op, fastConfig(), logging.NewNoOpLogger())

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestRetry_AllAttemptsFail_WrapsLastError(t *testing.T) {
	sentinel := errors.New("boom")
	calls := 0

	_, err := Retry(context.Background(), func() (int, error) {
		calls++
		return 0, sentinel
	}, fastConfig(), logging.NewNoOpLogger())

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestRetry_PermanentError_StopsImmediately(t *testing.T) {
	sentinel := errors.New("bad request")
	calls := 0

	err := RetryFunc(context.Background(), func() error {
		calls++
		return Permanent(sentinel)
	}, fastConfig(), nil)

	assert.Equal(t, sentinel, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ShouldRetryRejects_ReturnsOriginalError(t *testing.T) {
	cfg := fastConfig()
	cfg.ShouldRetry = func(err error, attempt int) bool { return false }
	sentinel := errors.New("not retryable")

	_, err := Retry(context.Background(), func() (int, error) { return 0, sentinel }, cfg, nil)

	assert.Equal(t, sentinel, err)
}

func TestRetry_ContextCancelled_ReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Retry(ctx, func() (int, error) { return 1, nil }, fastConfig(), nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryConfig_Validate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RetryConfig)
	}{
		{"zero retries", func(c *RetryConfig) { c.MaxRetries = 0 }},
		{"non-positive delay", func(c *RetryConfig) { c.InitialDelay = 0 }},
		{"max below initial", func(c *RetryConfig) { c.MaxDelay = time.Nanosecond }},
		{"shrinking backoff", func(c *RetryConfig) { c.BackoffFactor = 0.5 }},
		{"jitter above one", func(c *RetryConfig) { c.JitterFactor = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRetryConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNextDelay_CapsAtMax(t *testing.T) {
	assert.Equal(t, 4*time.Second, nextDelay(2*time.Second, 2.0, 5*time.Second))
	assert.Equal(t, 5*time.Second, nextDelay(4*time.Second, 2.0, 5*time.Second))
}

func TestWithJitter_StaysWithinBounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		d := withJitter(100*time.Millisecond, 0.2)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 120*time.Millisecond)
	}
}
