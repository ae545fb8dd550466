// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"

	"github.com/cookdoc/cookdoc/pkg/cueutil"
)

type (
	// Property is one settable property of a resource, in declaration order.
	Property struct {
		Name        string `json:"name" yaml:"name" toml:"name"`
		Type        string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
		Default     any    `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
		Required    bool   `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	}

	// Resource documents one file of the resources directory.
	Resource struct {
		Name          string     `json:"name" yaml:"name" toml:"name"`
		Description   string     `json:"description" yaml:"description" toml:"description"`
		Owner         string     `json:"owner" yaml:"owner" toml:"owner"`
		Actions       []string   `json:"actions,omitempty" yaml:"actions,omitempty" toml:"actions,omitempty"`
		DefaultAction string     `json:"default_action,omitempty" yaml:"default_action,omitempty" toml:"default_action,omitempty"`
		Properties    []Property `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
		SourcePath    string     `json:"source_path" yaml:"source_path" toml:"source_path"`
	}

	cueResource struct {
		Name          string   `json:"name"`
		Description   string   `json:"description"`
		Actions       []string `json:"actions"`
		DefaultAction string   `json:"default_action"`
	}
)

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseResourceFile reads the resource declared in path. owner is the name
// of the package providing the resource; an undeclared name defaults to
// "<owner>_<base name>". A comment at the top of the file stands in for a
// missing description.
func ParseResourceFile(path, owner string) (Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resource{}, parseError(path, err)
	}

	res, err := cueutil.Decode[cueResource](schema, data, "#Resource", cueutil.WithFilename(path))
	if err != nil {
		return Resource{}, parseError(path, err)
	}

	r := Resource{
		Name:          res.Value.Name,
		Description:   res.Value.Description,
		Owner:         owner,
		Actions:       res.Value.Actions,
		DefaultAction: res.Value.DefaultAction,
		SourcePath:    path,
	}
	if r.Name == "" {
		r.Name = owner + "_" + BaseName(path)
	}
	if r.Description == "" {
		if r.Description, err = cueutil.LeadingComment(data, path); err != nil {
			return Resource{}, parseError(path, err)
		}
	}

	if r.Properties, err = properties(cueutil.Lookup(res.Unified, "properties")); err != nil {
		return Resource{}, parseError(path, err)
	}
	return r, nil
}

func properties(v cue.Value) ([]Property, error) {
	fields, err := cueutil.Fields(v)
	if err != nil {
		return nil, err
	}
	var out []Property
	for _, f := range fields {
		p := Property{Name: f.Label}
		if err := decodeString(f.Value, "type", &p.Type); err != nil {
			return nil, fmt.Errorf("property %q: %w", f.Label, err)
		}
		if err := decodeString(f.Value, "description", &p.Description); err != nil {
			return nil, fmt.Errorf("property %q: %w", f.Label, err)
		}
		if p.Description == "" {
			p.Description = cueutil.DocText(f.Value)
		}
		if req := cueutil.Lookup(f.Value, "required"); req.Exists() {
			if p.Required, err = req.Bool(); err != nil {
				return nil, fmt.Errorf("property %q: %w", f.Label, err)
			}
		}
		if p.Default, err = cueutil.DecodeAny(cueutil.Lookup(f.Value, "default")); err != nil {
			return nil, fmt.Errorf("property %q: %w", f.Label, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeString(v cue.Value, label string, dst *string) error {
	field := cueutil.Lookup(v, label)
	if !field.Exists() {
		return nil
	}
	s, err := field.String()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}
