// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"

	"github.com/cookdoc/cookdoc/pkg/cueutil"
)

type (
	// Param is one parameter accepted by a definition.
	Param struct {
		Name        string `json:"name" yaml:"name" toml:"name"`
		Default     any    `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	}

	// Definition documents one file of the definitions directory. Its name
	// is always the file's base name.
	Definition struct {
		Name        string  `json:"name" yaml:"name" toml:"name"`
		Description string  `json:"description" yaml:"description" toml:"description"`
		Params      []Param `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
		SourcePath  string  `json:"source_path" yaml:"source_path" toml:"source_path"`
	}

	cueDefinition struct {
		Description string `json:"description"`
	}
)

// ParseDefinitionFile reads the definition declared in path.
func ParseDefinitionFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, parseError(path, err)
	}

	res, err := cueutil.Decode[cueDefinition](schema, data, "#Definition", cueutil.WithFilename(path))
	if err != nil {
		return Definition{}, parseError(path, err)
	}

	d := Definition{
		Name:        BaseName(path),
		Description: res.Value.Description,
		SourcePath:  path,
	}
	if d.Description == "" {
		if d.Description, err = cueutil.LeadingComment(data, path); err != nil {
			return Definition{}, parseError(path, err)
		}
	}
	if d.Params, err = params(cueutil.Lookup(res.Unified, "params")); err != nil {
		return Definition{}, parseError(path, err)
	}
	return d, nil
}

func params(v cue.Value) ([]Param, error) {
	fields, err := cueutil.Fields(v)
	if err != nil {
		return nil, err
	}
	var out []Param
	for _, f := range fields {
		p := Param{Name: f.Label}
		if err := decodeString(f.Value, "description", &p.Description); err != nil {
			return nil, fmt.Errorf("param %q: %w", f.Label, err)
		}
		if p.Description == "" {
			p.Description = cueutil.DocText(f.Value)
		}
		if p.Default, err = cueutil.DecodeAny(cueutil.Lookup(f.Value, "default")); err != nil {
			return nil, fmt.Errorf("param %q: %w", f.Label, err)
		}
		out = append(out, p)
	}
	return out, nil
}
