package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolved indicates that a required linked object could not be found.
	ErrUnresolved = errors.New("unresolved reference")

	// ErrLocationCycle indicates that a location's parent chain loops.
	ErrLocationCycle = errors.New("location parent cycle")
)

// UnresolvedError describes a reference that could not be resolved in NetBox.
type UnresolvedError struct {
	Kind     string
	SourceID int
}

// Error implements the error interface.
func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("no %s linked to snipe id %d", e.Kind, e.SourceID)
}

// Is implements errors.Is support.
func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolved
}

// Unresolved creates an UnresolvedError.
func Unresolved(kind string, sourceID int) *UnresolvedError {
	return &UnresolvedError{Kind: kind, SourceID: sourceID}
}
