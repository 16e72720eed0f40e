package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks caller mistakes: missing required fields, out of
	// range values, unknown enum tags. The failed operation mutated nothing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a task or remote profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTransientRemote wraps network or service failures of a remote collaborator.
	ErrTransientRemote = errors.New("remote service failure")

	// ErrCorruptState marks a persisted slot that failed to decode.
	ErrCorruptState = errors.New("corrupt persisted state")
)

// InputError names the field that failed validation. It matches ErrInvalidInput
// under errors.Is.
type InputError struct {
	Field  string
	Reason string
}

func (e InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
