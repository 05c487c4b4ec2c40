package app

import (
	"errors"
	"fmt"
)

// OperationError describes a failed session operation on a target such as
// a file path.
type OperationError struct {
	// Op is the operation that failed (e.g., "open", "load").
	Op string
	// Target is what the operation was applied to.
	Target string
	// Err is the underlying error.
	Err error
}

// NewOperationError creates a new operation error.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsOperation reports whether err is an OperationError for op.
func IsOperation(err error, op string) bool {
	var oe *OperationError
	return errors.As(err, &oe) && oe.Op == op
}
