package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Load when nothing is stored under the key.
	ErrNotFound = errors.New("key not found")

	// ErrUnknownDriver is returned by Open for an unsupported backend name.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrCorrupt is returned when the backing file cannot be parsed.
	ErrCorrupt = errors.New("storage file is corrupt")
)

// Error is a persistence failure: a read or write against the backend that
// did not complete. No partial write is left behind when it is returned from Save.
type Error struct {
	// Op is the failing operation ("Load", "Save", "Open").
	Op string

	// Key is the affected key, empty for multi-key saves.
	Key string

	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage: %s %q failed: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &Error{Op: op, Key: key, Err: err}
}
