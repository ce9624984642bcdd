package invoice

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common ledger errors
var (
	// ErrNotFound is returned when no invoice carries the requested number.
	ErrNotFound = errors.New("invoice not found")

	// ErrAlreadyPaid is returned when marking an invoice that is already Paid.
	ErrAlreadyPaid = errors.New("invoice is already paid")

	// ErrNumberConflict is returned by Create when the counter points at a
	// number that an existing invoice already uses, which happens after the
	// counter was set back by hand.
	ErrNumberConflict = errors.New("invoice number already in use")

	// ErrInvalidNumber is returned when the counter is set below 1.
	ErrInvalidNumber = errors.New("invoice number must be a positive integer")
)

// LedgerError wraps errors with the ledger operation and invoice number involved.
type LedgerError struct {
	// Op is the operation that failed (e.g., "Create", "MarkPaid").
	Op string

	// Number is the invoice number concerned, 0 when not applicable.
	Number int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Number != 0 {
		return fmt.Sprintf("invoice: %s INV-%d failed: %v", e.Op, e.Number, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

func newLedgerError(op string, number int, err error) *LedgerError {
	return &LedgerError{Op: op, Number: number, Err: err}
}

// FieldErrors maps an input field name to a user-facing message. It is
// returned by Create when the draft is invalid; nothing is mutated then.
type FieldErrors map[string]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fe.Fields() {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the offending field names in sorted order.
func (fe FieldErrors) Fields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
