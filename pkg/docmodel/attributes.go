// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"github.com/cookdoc/cookdoc/pkg/artifact"
	"github.com/cookdoc/cookdoc/pkg/metadata"
)

// AttributeParser reads the attributes declared in one attribute file.
type AttributeParser func(path string) ([]artifact.Attribute, error)

// AggregateAttributes lists every documented attribute: first those
// declared in the metadata file (source names that file), in declaration
// order, then those of each file of dir matching pattern, in sorted file
// order. Entries are never merged, so a path declared in both places
// appears twice.
func AggregateAttributes(s Scanner, specs []metadata.AttributeSpec, source, dir, pattern string, parse AttributeParser) ([]artifact.Attribute, error) {
	out := make([]artifact.Attribute, 0, len(specs))
	for _, spec := range specs {
		out = append(out, artifact.FromSpec(spec, source))
	}

	perFile, err := ScanEach(s, dir, pattern, func(path string) ([]artifact.Attribute, error) {
		return parse(path)
	})
	if err != nil {
		return nil, err
	}
	for _, attrs := range perFile {
		out = append(out, attrs...)
	}
	return out, nil
}
