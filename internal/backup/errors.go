package backup

import (
	"errors"
	"fmt"
)

// ErrDecode is the sentinel matched by every DecodeError.
var ErrDecode = errors.New("invalid backup")

// ErrDuplicateNumber is wrapped by a DecodeError when two invoices share a number.
var ErrDuplicateNumber = errors.New("duplicate invoice number")

// DecodeError reports why a backup could not be read.
type DecodeError struct {
	// Field is the top-level field that failed, empty for the document itself.
	Field string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("backup: invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("backup: %v", e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
