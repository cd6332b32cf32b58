package api

import (
	"errors"
	"net/http"
)

// ErrorKind classifies why a backend call failed
type ErrorKind int

// Error kinds
const (
	// KindNetwork is a transport failure, timeout or cancellation
	KindNetwork ErrorKind = iota + 1
	// KindHTTP is a non-2xx response carrying an error message
	KindHTTP
	// KindHTTPNoBody is a non-2xx response without a parseable body
	KindHTTPNoBody
	// KindDecode is a 2xx response whose payload could not be decoded
	KindDecode
	// KindValidation is a client-side check that failed before any request
	KindValidation
	// KindUnauthorized is a 401/403 answer to an authenticated call
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindHTTPNoBody:
		return "http_no_body"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// AccessDeniedMessage is shown when the backend rejects the admin token
const AccessDeniedMessage = "Access denied. Please login again."

// Error is the failure half of a Result
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Fields holds per-field messages of a KindValidation error
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the backend answered 404
func (e *Error) IsNotFound() bool {
	return e != nil && e.Status == http.StatusNotFound
}

// Result is the single contract every service returns: either Data or Err.
type Result[T any] struct {
	Data T
	Err  *Error
}

// Ok wraps a successful value
func Ok[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

// Fail wraps a failure
func Fail[T any](err *Error) Result[T] {
	return Result[T]{Err: err}
}

// OK reports whether the call succeeded
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Message returns the human readable failure message, or "" on success
func (r Result[T]) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message
}

// Unauthorized reports whether the backend rejected the token
func (r Result[T]) Unauthorized() bool {
	return r.Err != nil && r.Err.Kind == KindUnauthorized
}

// Error returns the failure as a plain error, or nil
func (r Result[T]) Error() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

// Empty is the payload of calls that return nothing
type Empty struct{}

// AsError extracts an *Error from err
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Validation builds a KindValidation error
func Validation(message string, fields map[string]string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields, Err: cause}
}
