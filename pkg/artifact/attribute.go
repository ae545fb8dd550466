// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	_ "embed"
	"strings"

	"github.com/cookdoc/cookdoc/pkg/cueutil"
	"github.com/cookdoc/cookdoc/pkg/metadata"
)

//go:embed schema.cue
var schema string

// Attribute is one documented configuration knob.
type Attribute struct {
	// Path is the node path, e.g. node['db']['user'].
	Path        string `json:"path" yaml:"path" toml:"path"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty" toml:"display_name,omitempty"`
	Description string `json:"description" yaml:"description" toml:"description"`
	// Default is nil when no default is declared.
	Default any `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	// Choices is nil when the attribute is not an enumeration.
	Choices []any `json:"choice,omitempty" yaml:"choice,omitempty" toml:"choice,omitempty"`
	// Source is the metadata or attribute file that declared the attribute.
	Source string `json:"source" yaml:"source" toml:"source"`
}

// NodePath rewrites a slash-delimited key into node index notation:
// "db/user" becomes node['db']['user'].
func NodePath(key string) string {
	return "node['" + strings.ReplaceAll(key, "/", "']['") + "']"
}

// FromSpec builds the Attribute for a metadata-declared attribute.
func FromSpec(spec metadata.AttributeSpec, source string) Attribute {
	return Attribute{
		Path:        NodePath(spec.Path),
		DisplayName: spec.DisplayName,
		Description: spec.Description,
		Default:     spec.Default,
		Choices:     spec.Choices,
		Source:      source,
	}
}

// ParseAttributesFile reads an attribute declaration file. Every top-level
// field declares one attribute keyed by its slash path:
//
//	// Port the application listens on.
//	"webapp/port": default: 8080
//
//	"webapp/mode": {
//		description: "Run mode"
//		default:     "prod"
//		choice: ["prod", "dev"]
//	}
//
// Attributes are returned in declaration order.
func ParseAttributesFile(path string) ([]Attribute, error) {
	res, err := cueutil.DecodeFile[map[string]any](path, schema, "#AttributeFile")
	if err != nil {
		return nil, parseError(path, err)
	}

	fields, err := cueutil.Fields(res.Unified)
	if err != nil {
		return nil, parseError(path, err)
	}

	out := make([]Attribute, 0, len(fields))
	for _, f := range fields {
		spec, err := metadata.DecodeAttributeSpec(f.Label, f.Value)
		if err != nil {
			return nil, parseError(path, cueutil.FormatError(err, path))
		}
		out = append(out, FromSpec(spec, path))
	}
	return out, nil
}
