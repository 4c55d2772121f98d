package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedReference matches any *UnresolvedReferenceError.
	ErrUnresolvedReference = errors.New("unresolved relationship target")
	// ErrCycle matches any *CycleViolationError.
	ErrCycle = errors.New("ontology hierarchy contains a cycle")
)

// UnresolvedReferenceError reports a relationship whose target is not an
// active term of the ontology.
type UnresolvedReferenceError struct {
	SourceID string
	TargetID string
	Type     string
	// Obsolete is true when the target exists but is flagged obsolete.
	Obsolete bool
	// Err is the lookup failure reported by the container, if any.
	Err error
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	reason := "not found"
	if e.Obsolete {
		reason = "obsolete"
	}
	return fmt.Sprintf("term %s: %s target %s is %s", e.SourceID, e.Type, e.TargetID, reason)
}

// Is makes errors.Is(err, ErrUnresolvedReference) succeed.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// Unwrap returns the container's lookup error.
func (e *UnresolvedReferenceError) Unwrap() error {
	return e.Err
}

// CycleViolationError reports that the built graph failed the acyclicity
// check.
type CycleViolationError struct {
	Err error
}

// Error implements the error interface.
func (e *CycleViolationError) Error() string {
	if e.Err == nil {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s: %v", ErrCycle, e.Err)
}

// Is makes errors.Is(err, ErrCycle) succeed.
func (e *CycleViolationError) Is(target error) bool {
	return target == ErrCycle
}

// Unwrap returns the underlying check failure, typically a *graph.CycleError.
func (e *CycleViolationError) Unwrap() error {
	return e.Err
}
