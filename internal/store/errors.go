package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity, such as two users with the same identifier.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the backend rejects an entity,
	// for example on a constraint violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrIdentifierExists indicates that the identifier chosen for a new user
	// is already taken, which means two writers raced past the store's lock.
	ErrIdentifierExists = fmt.Errorf("%w: identifier", ErrDuplicate)
)

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a store-specific error with additional context.
type StoreError struct {
	Entity    string // The entity type, e.g. "user"
	Operation string // The operation that failed, e.g. "add"
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
