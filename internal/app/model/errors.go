package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by every parse error caused by an
	// absent required field.
	ErrMissingField error = errors.New("required field missing")
	// ErrInvalidDate is wrapped when pubDate can not be parsed.
	ErrInvalidDate error = errors.New("invalid publish date")
)

// MissingField returns an error wrapping ErrMissingField naming field.
func MissingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
