package algorithms

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a caller passes an argument outside an
// algorithm's contract, such as a non-positive iteration count.
var ErrInvalidArgument = errors.New("invalid argument")

// AlgorithmError provides structured information about a rejected call.
type AlgorithmError struct {
	Op    string // Algorithm that rejected the call (e.g., "HITS", "TopK")
	Arg   string // Offending argument name
	Value any    // Offending value
	Cause error  // Underlying sentinel
}

// Error implements the error interface.
func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %v", e.Op, e.Arg, e.Value, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AlgorithmError) Unwrap() error {
	return e.Cause
}

func invalidArgument(op, arg string, value any) error {
	return &AlgorithmError{Op: op, Arg: arg, Value: value, Cause: ErrInvalidArgument}
}

// IsInvalidArgument returns true if err was caused by a contract violation.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
