package service

import (
	"errors"
	"fmt"
)

// ErrNilDependency is returned by constructors when a required dependency
// is missing.
var ErrNilDependency = errors.New("required dependency is nil")

// ServiceError wraps an unexpected error with the operation that failed.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns nil when err is nil and a ServiceError otherwise.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
