package app

import "errors"

var (
	// ErrNotPaid is returned when a receipt is requested for an invoice that
	// has not been marked as paid.
	ErrNotPaid = errors.New("invoice has not been paid")

	// ErrNoEmail is returned when an invoice has no client email to send to.
	ErrNoEmail = errors.New("invoice has no client email")
)
