// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is wrapped by NotFoundError when an artifact path exists
// but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

type (
	// MetadataLoadError reports a metadata file that is missing or could not
	// be decoded. It is always fatal to Build.
	MetadataLoadError struct {
		Root string
		// Path is the metadata file, empty when none was found.
		Path string
		Err  error
	}

	// NotFoundError reports an artifact directory that exists but cannot be
	// listed, or a listed file that cannot be read. Directories that do not
	// exist are not an error.
	NotFoundError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *MetadataLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load metadata of %s: %v", e.Root, e.Err)
	}
	return fmt.Sprintf("load metadata %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *MetadataLoadError) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}
