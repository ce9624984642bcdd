package document

import "errors"

var (
	// ErrRender is returned when the PDF writer fails.
	ErrRender = errors.New("document rendering failed")

	errNotDataURL = errors.New("not a data URL")
)
