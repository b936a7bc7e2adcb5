package errors

import (
	"context"
	"errors"
	"net"
	"strings"
)

// statusCoder is satisfied by transport errors that carry an HTTP status
type statusCoder interface {
	HTTPStatusCode() int
}

// Classify converts err to an *Error. Errors already structured pass through unchanged.
// Opaque errors are categorised by type first and by message text only as a last resort.
func Classify(err error, msg string) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	if msg == "" {
		msg = err.Error()
	}

	var sc statusCoder
	if errors.As(err, &sc) && sc.HTTPStatusCode() > 0 {
		return NewAPIError(msg, sc.HTTPStatusCode(), err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewNetworkError(msg, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewNetworkError(msg, err)
	}

	text := strings.ToLower(err.Error())
	switch {
	case containsAny(text, "network", "timeout", "connection refused", "connection reset", "no such host", "eof"):
		return NewNetworkError(msg, err)
	case containsAny(text, "insufficient", "balance"):
		return NewBalanceError(msg, "", "", err)
	case containsAny(text, "execution reverted", "revert", "contract", "transaction", "gas"):
		return NewContractError(msg, err)
	case containsAny(text, "api key", "unauthorized", "forbidden"):
		return NewAuthenticationError(msg, err)
	}
	return NewUnknownError(msg, err)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
