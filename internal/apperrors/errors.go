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

// ErrUnauthorized indicates that the acting user does not own the target resource.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the user is known but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current resource state.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned when an unexpected internal error occurs.
var ErrInternal = errors.New("internal error")

// Business errors produced by the transfer engine and the lifecycle manager.
// These are detected before any mutation, or cause a clean rollback, and are
// never retried.
var (
	ErrAccountInactive        = errors.New("account is inactive")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSameAccount            = errors.New("source and destination accounts must be different")
	ErrDestinationNotFound    = errors.New("destination account not found")
	ErrHasPendingTransactions = errors.New("account has pending transactions")
	ErrHasActiveCards         = errors.New("account has active cards")
	ErrInvalidLimit           = errors.New("limits must be non-negative")
	ErrDuplicateReference     = errors.New("transaction reference already exists")
	ErrOperationFailed        = errors.New("operation failed")
)

// AppError wraps a lower-level failure with an HTTP-ish status code and a message.
// Repositories use it for infrastructure errors that carry no business meaning.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
