package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHTTPError struct{ status int }

func (e *fakeHTTPError) Error() string       { return fmt.Sprintf("HTTP %d: nope", e.status) }
func (e *fakeHTTPError) HTTPStatusCode() int { return e.status }

func TestError_Is_MatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("stage failed: %w", NewBalanceError("insufficient", "10", "5", nil))

	assert.ErrorIs(t, err, ErrBalance)
	assert.NotErrorIs(t, err, ErrContract)
}

func TestError_Error_IncludesFieldAndCause(t *testing.T) {
	e := NewValidationError("timeInterval", "Time interval cannot exceed the timeframe.")
	assert.Equal(t, "validation error [timeInterval]: Time interval cannot exceed the timeframe.", e.Error())

	c := NewContractError("createJob failed", errors.New("execution reverted"))
	assert.Equal(t, "contract error: createJob failed: execution reverted", c.Error())
}

func TestNewAPIError_WithStatus_UsesHTTPCode(t *testing.T) {
	assert.Equal(t, "HTTP_404", NewAPIError("not found", 404, nil).Code)
	assert.Equal(t, CodeAPI, NewAPIError("bad body", 0, nil).Code)
}

func TestClassify_StructuredError_PassesThrough(t *testing.T) {
	original := NewConfigurationError("no job registry")
	assert.Same(t, original, Classify(fmt.Errorf("wrap: %w", original), "ignored"))
}

func TestClassify_OpaqueErrors_UsesTypeThenText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"http status", &fakeHTTPError{status: 502}, KindAPI},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, KindNetwork},
		{"timeout text", errors.New("request timeout"), KindNetwork},
		{"insufficient funds", errors.New("insufficient funds for gas * price + value"), KindBalance},
		{"revert", errors.New("execution reverted: only owner"), KindContract},
		{"auth", errors.New("invalid API key"), KindAuthentication},
		{"other", errors.New("something odd"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(tt.err, "").Kind)
		})
	}
}

func TestClassify_HTTPStatus_RecordsStatus(t *testing.T) {
	e := Classify(&fakeHTTPError{status: 429}, "Failed to fetch job cost prediction")

	assert.Equal(t, 429, e.HTTPStatus)
	assert.Equal(t, "HTTP_429", e.Code)
	assert.Equal(t, "Failed to fetch job cost prediction", e.Message)
}

func TestFail_PopulatesResultFields(t *testing.T) {
	res := Fail[string](NewBalanceError("Insufficient ETH balance", "100", "40", nil), "")

	assert.False(t, res.Success)
	assert.Equal(t, CodeBalance, res.ErrorCode)
	assert.Equal(t, KindBalance, res.ErrorType)
	assert.Equal(t, "100", res.Details["required"])
	assert.Equal(t, "40", res.Details["current"])

	_, err := res.Unwrap()
	assert.ErrorIs(t, err, ErrBalance)
}

func TestFail_ValidationError_ExposesField(t *testing.T) {
	res := Fail[any](NewValidationError("dynamicArgumentsScriptUrl", "required"), "")

	assert.Equal(t, "dynamicArgumentsScriptUrl", res.Details["field"])
	assert.Equal(t, KindValidation, res.ErrorType)
}

func TestOK_Unwrap_ReturnsData(t *testing.T) {
	data, err := OK(7).Unwrap()

	require.NoError(t, err)
	assert.Equal(t, 7, data)
}
