// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// newFileMode is applied to files WriteFile creates. Existing files keep
// their mode.
const newFileMode fs.FileMode = 0o644

// WriteFile replaces the file at path with content. Readers see either the
// old or the new file, never a partial write.
func WriteFile(path, content string) error {
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if created {
		if err := os.Chmod(path, newFileMode); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
