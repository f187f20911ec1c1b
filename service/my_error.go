package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that a required record is absent in the store.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrIllegalState means the operation was called outside the lifecycle
	// state that permits it.
	ErrIllegalState = "illegal_state"
	// ErrInvalidEndpoint means a registration endpoint URL is malformed.
	ErrInvalidEndpoint = "invalid_endpoint"
	// ErrIO means a store or serialization failure. All backend faults
	// surface under this one code so callers need no backend knowledge.
	ErrIO = "io_error"
)

// ErrPortUndefined marks a registration endpoint whose port is zero or
// missing. It is wrapped inside an io_error; match it with errors.Is.
var ErrPortUndefined = errors.New("port undefined")

// MyError represents an error within the context of myregistry services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

func NewIllegalStateError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrIllegalState, message, inner)
}

func NewInvalidEndpointError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInvalidEndpoint, message, inner)
}

// NewIOError classifies a failure as io_error. An inner error that already
// carries a myregistry code passes through unchanged, so classified errors
// keep their original code as they cross the store boundary.
func NewIOError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrIO, message, inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a myregistry error, or nil if it is not a
// myregistry error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsIllegalStateError(err error) bool {
	return IsMyError(err, ErrIllegalState)
}

func IsInvalidEndpointError(err error) bool {
	return IsMyError(err, ErrInvalidEndpoint)
}

func IsIOError(err error) bool {
	return IsMyError(err, ErrIO)
}

// IsPortUndefinedError reports whether err is the io_error raised for a
// registration endpoint without a usable port.
func IsPortUndefinedError(err error) bool {
	return errors.Is(err, ErrPortUndefined)
}
