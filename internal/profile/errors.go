package profile

import "errors"

// ErrInvalidLogo is returned when an uploaded logo cannot be decoded as an image.
var ErrInvalidLogo = errors.New("logo is not a readable image")
