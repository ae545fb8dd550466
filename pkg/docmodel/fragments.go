// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"os"

	"github.com/cookdoc/cookdoc/pkg/artifact"
)

// LoadFragments reads every file of dir matching pattern into a map keyed by
// base name. Files are read in sorted order, so on a key collision the
// last file wins.
func LoadFragments(s Scanner, dir, pattern string) (map[string]string, error) {
	paths, err := s.Scan(dir, pattern)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &NotFoundError{Path: p, Err: err}
		}
		out[artifact.BaseName(p)] = string(data)
	}
	return out, nil
}
