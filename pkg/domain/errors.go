package domain

import (
	"errors"
	"fmt"
)

// ErrSetupFailed is returned when the configured operations cannot be created.
var ErrSetupFailed = errors.New("route operations setup failed")

// ErrOperationNotFound is returned when a graph descriptor references an
// operation type that has no registered plugin and feedback operations are disabled.
var ErrOperationNotFound = errors.New("operation not found")

// ErrOperationFailed is returned when an operation's Perform fails.
var ErrOperationFailed = errors.New("operation failed")

// ErrPluginNotFound is returned when no factory is registered for a plugin type.
var ErrPluginNotFound = errors.New("plugin not found")

// ErrGraphInvalid is returned when a navigation graph definition is inconsistent.
var ErrGraphInvalid = errors.New("invalid graph")

// OperationError ties a failure to the operation that caused it.
type OperationError struct {
	Operation string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s: %v", e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
