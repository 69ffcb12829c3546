package dictionary

import (
	"errors"
	"fmt"
)

// ErrUndetermined is returned by Convert when the input format was Auto and no codec recognized the text.
var ErrUndetermined = errors.New("cannot auto-detect format")

// ParseError is returned when the underlying JSON or TOML library rejects the text.
// The message of the library error is kept verbatim so it can be shown to the user.
type ParseError struct {
	Format FormatKey
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
