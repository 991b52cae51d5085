package galaxy

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generation failures.
type ErrorKind string

const (
	// KindValidation indicates a parameter outside its domain.
	KindValidation ErrorKind = "validation"
	// KindAllocation indicates the particle buffers could not be obtained.
	KindAllocation ErrorKind = "allocation"
	// KindOther covers everything else.
	KindOther ErrorKind = "other"
)

// ValidationError reports a ParameterSet field that violates its domain.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// AllocationError reports that buffers for Count particles could not be
// obtained. Err is set when the runtime refused the allocation.
type AllocationError struct {
	Count int
	Bytes int
	Err   error
}

func (e *AllocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("allocate %d particles (%d bytes): %v", e.Count, e.Bytes, e.Err)
	}
	return fmt.Sprintf("allocate %d particles (%d bytes): exceeds budget", e.Count, e.Bytes)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// Kind returns the category of err.
func Kind(err error) ErrorKind {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	var aerr *AllocationError
	if errors.As(err, &aerr) {
		return KindAllocation
	}
	return KindOther
}

func invalid(field string, value any, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
