package store

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the store. Callers branch with errors.Is and
// render an explanatory response; nothing here should crash a request.
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate field")
	ErrCorruptData = errors.New("corrupt table data")
	ErrIO          = errors.New("storage i/o failure")
)

// DuplicateFieldError reports which uniqueness constraint a create violated.
type DuplicateFieldError struct {
	Field string
	Value string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %s: %q already exists", e.Field, e.Value)
}

func (e *DuplicateFieldError) Unwrap() error {
	return ErrDuplicate
}
