package errors

// Result is the uniform outcome returned by every public pipeline entry point.
type Result[T any] struct {
	Success   bool           `json:"success"`
	Data      T              `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorCode string         `json:"errorCode,omitempty"`
	ErrorType Kind           `json:"errorType,omitempty"`
	Details   map[string]any `json:"details,omitempty"`

	// Err keeps the structured error for callers using errors.Is / errors.As
	Err *Error `json:"-"`
}

func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail classifies err (using msg for opaque errors) into a failed Result
func Fail[T any](err error, msg string) Result[T] {
	e := Classify(err, msg)
	if e == nil {
		e = NewUnknownError(msg, nil)
	}

	details := make(map[string]any, len(e.Details)+2)
	for k, v := range e.Details {
		details[k] = v
	}
	if e.Field != "" {
		details["field"] = e.Field
	}
	if e.HTTPStatus != 0 {
		details["httpStatusCode"] = e.HTTPStatus
	}
	if e.Err != nil {
		details["originalError"] = e.Err.Error()
	}

	return Result[T]{
		Success:   false,
		Error:     e.Error(),
		ErrorCode: e.Code,
		ErrorType: e.Kind,
		Details:   details,
		Err:       e,
	}
}

// Unwrap returns the data and the structured error, for callers that prefer (T, error)
func (r Result[T]) Unwrap() (T, error) {
	if r.Success {
		return r.Data, nil
	}
	if r.Err == nil {
		return r.Data, NewUnknownError(r.Error, nil)
	}
	return r.Data, r.Err
}
