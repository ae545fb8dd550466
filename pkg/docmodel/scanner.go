// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/exp/slices"
)

// Scanner lists the files of one artifact directory.
type Scanner interface {
	// Scan returns the absolute paths of the regular files in dir matching
	// pattern, sorted lexicographically. Hidden files (base name starting
	// with ".") never match. A dir that does not exist yields an empty
	// slice and no error.
	Scan(dir, pattern string) ([]string, error)
}

// GlobScanner is the default Scanner. Patterns use doublestar syntax and
// are matched relative to dir.
type GlobScanner struct{}

// Scan implements Scanner.
func (GlobScanner) Scan(dir, pattern string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &NotFoundError{Path: dir, Err: err}
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []string{}, nil
	case err != nil:
		return nil, &NotFoundError{Path: abs, Err: err}
	case !info.IsDir():
		return nil, &NotFoundError{Path: abs, Err: ErrNotDirectory}
	}

	matches, err := doublestar.Glob(os.DirFS(abs), pattern,
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, &NotFoundError{Path: abs, Err: err}
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if isHidden(m) {
			continue
		}
		paths = append(paths, filepath.Join(abs, filepath.FromSlash(m)))
	}
	slices.Sort(paths)
	return paths, nil
}

// Scan lists dir with the default GlobScanner.
func Scan(dir, pattern string) ([]string, error) {
	return GlobScanner{}.Scan(dir, pattern)
}

// ScanEach lists dir with s and builds one entry per matched file, in
// sorted path order. The first build error aborts the scan.
func ScanEach[T any](s Scanner, dir, pattern string, build func(path string) (T, error)) ([]T, error) {
	paths, err := s.Scan(dir, pattern)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(paths))
	for _, p := range paths {
		entry, err := build(p)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// isHidden reports whether the slash-separated match is a dotfile, such as
// an editor lock file or a macOS AppleDouble file.
func isHidden(match string) bool {
	return strings.HasPrefix(path.Base(match), ".")
}

func extPattern(ext string) string {
	return "*." + ext
}
