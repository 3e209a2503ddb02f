package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not permit the
// requested transition (e.g. approving an already-completed movement).
var ErrConflict = errors.New("resource state conflict")

// ErrInsufficientStock indicates an inventory row holds less quantity than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOverpayment indicates the supplied payments exceed the order's net amount.
var ErrOverpayment = errors.New("payments exceed amount due")

// ErrContention indicates a row lock could not be acquired within the
// configured timeout. The operation left no state behind and may be retried.
var ErrContention = errors.New("resource contention, retry the operation")

// AppError wraps an infrastructure failure with an HTTP-ish status code.
// Domain failures use the sentinel errors above instead.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
