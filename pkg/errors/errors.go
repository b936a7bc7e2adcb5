package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the coarse category every SDK failure is reported under
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConfiguration  Kind = "configuration"
	KindAuthentication Kind = "authentication"
	KindContract       Kind = "contract"
	KindBalance        Kind = "balance"
	KindAPI            Kind = "api"
	KindNetwork        Kind = "network"
	KindUnknown        Kind = "unknown"
)

const (
	CodeValidation              = "VALIDATION_ERROR"
	CodeConfiguration           = "CONFIGURATION_ERROR"
	CodeAuthentication          = "AUTHENTICATION_ERROR"
	CodeContract                = "CONTRACT_ERROR"
	CodeBalance                 = "BALANCE_ERROR"
	CodeAPI                     = "API_ERROR"
	CodeBackendValidationFailed = "BACKEND_VALIDATION_FAILED"
	CodeNetwork                 = "NETWORK_ERROR"
	CodeUnknown                 = "UNKNOWN_ERROR"
)

var defaultCodes = map[Kind]string{
	KindValidation:     CodeValidation,
	KindConfiguration:  CodeConfiguration,
	KindAuthentication: CodeAuthentication,
	KindContract:       CodeContract,
	KindBalance:        CodeBalance,
	KindAPI:            CodeAPI,
	KindNetwork:        CodeNetwork,
	KindUnknown:        CodeUnknown,
}

// Error is the structured failure produced at the point where the SDK knows what went wrong.
type Error struct {
	Kind       Kind
	Code       string
	Message    string
	Field      string // set for validation errors
	HTTPStatus int    // set for api errors when a response was received
	Details    map[string]any
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(" error")
	if e.Field != "" {
		b.WriteString(" [")
		b.WriteString(e.Field)
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, ErrBalance) works
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Code == ""
}

// WithDetail attaches a context value and returns e for chaining
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Sentinels for errors.Is checks by kind
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrConfiguration  = &Error{Kind: KindConfiguration}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrContract       = &Error{Kind: KindContract}
	ErrBalance        = &Error{Kind: KindBalance}
	ErrAPI            = &Error{Kind: KindAPI}
	ErrNetwork        = &Error{Kind: KindNetwork}
	ErrUnknown        = &Error{Kind: KindUnknown}
)

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Code: defaultCodes[kind], Message: msg, Err: err}
}

func NewValidationError(field, msg string) *Error {
	e := newError(KindValidation, msg, nil)
	e.Field = field
	return e
}

func NewConfigurationError(msg string) *Error {
	return newError(KindConfiguration, msg, nil)
}

func NewAuthenticationError(msg string, err error) *Error {
	return newError(KindAuthentication, msg, err)
}

func NewContractError(msg string, err error) *Error {
	return newError(KindContract, msg, err)
}

func NewNetworkError(msg string, err error) *Error {
	return newError(KindNetwork, msg, err)
}

func NewUnknownError(msg string, err error) *Error {
	return newError(KindUnknown, msg, err)
}

// NewBalanceError records the required and current amounts (wei, decimal strings) in Details
func NewBalanceError(msg, required, current string, err error) *Error {
	e := newError(KindBalance, msg, err)
	if required != "" {
		e.WithDetail("required", required)
	}
	if current != "" {
		e.WithDetail("current", current)
	}
	return e
}

// NewAPIError builds an api error; a non-zero status yields the HTTP_<status> code
func NewAPIError(msg string, status int, err error) *Error {
	e := newError(KindAPI, msg, err)
	if status > 0 {
		e.HTTPStatus = status
		e.Code = fmt.Sprintf("HTTP_%d", status)
	}
	return e
}

// As returns the *Error in err's chain, if any
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the kind of err, classifying opaque errors on the way
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return Classify(err, "").Kind
}
