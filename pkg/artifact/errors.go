// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel wrapped by ParseError.
var ErrParse = errors.New("malformed artifact file")

// ParseError reports an artifact file that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrParse and the underlying cause to errors.Is/As.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

func parseError(path string, err error) error {
	return &ParseError{Path: path, Err: err}
}
