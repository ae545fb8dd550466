// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"

	"github.com/cookdoc/cookdoc/pkg/cueutil"
)

//go:embed metadata_schema.cue
var metadataSchema string

type (
	// CUEProvider reads metadata.cue files.
	CUEProvider struct{}

	// cueMetadata carries the scalar fields; ordered mappings are walked
	// from the unified value instead.
	cueMetadata struct {
		Name            string `json:"name"`
		Version         string `json:"version,omitempty"`
		Description     string `json:"description,omitempty"`
		LongDescription string `json:"long_description,omitempty"`
		Maintainer      string `json:"maintainer,omitempty"`
		MaintainerEmail string `json:"maintainer_email,omitempty"`
		License         string `json:"license,omitempty"`
		SourceURL       string `json:"source_url,omitempty"`
		IssuesURL       string `json:"issues_url,omitempty"`
	}
)

// Load implements Provider.
func (CUEProvider) Load(path string) (*Metadata, error) {
	res, err := cueutil.DecodeFile[cueMetadata](path, metadataSchema, "#Metadata")
	if err != nil {
		return nil, err
	}

	v := res.Value
	md := &Metadata{
		Name:            v.Name,
		Version:         v.Version,
		Description:     v.Description,
		LongDescription: v.LongDescription,
		Maintainer:      v.Maintainer,
		MaintainerEmail: v.MaintainerEmail,
		License:         v.License,
		SourceURL:       v.SourceURL,
		IssuesURL:       v.IssuesURL,
		FilePath:        path,
	}

	root := res.Unified
	if md.Attributes, err = cueAttributes(cueutil.Lookup(root, "attributes")); err != nil {
		return nil, cueutil.FormatError(err, path)
	}
	if md.Recipes, err = cueRecipes(cueutil.Lookup(root, "recipes")); err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	lists := []struct {
		field string
		dst   *[]Constraint
	}{
		{"supports", &md.Platforms},
		{"depends", &md.Dependencies},
		{"recommends", &md.Recommendations},
		{"suggests", &md.Suggestions},
		{"conflicts", &md.Conflicting},
	}
	for _, l := range lists {
		if *l.dst, err = cueConstraints(cueutil.Lookup(root, l.field)); err != nil {
			return nil, cueutil.FormatError(err, path)
		}
	}

	return md, nil
}

func cueAttributes(v cue.Value) ([]AttributeSpec, error) {
	fields, err := cueutil.Fields(v)
	if err != nil {
		return nil, err
	}
	out := make([]AttributeSpec, 0, len(fields))
	for _, f := range fields {
		spec, err := DecodeAttributeSpec(f.Label, f.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// DecodeAttributeSpec reads one #Attribute-shaped CUE value. The field's
// doc comment stands in for a missing description.
func DecodeAttributeSpec(path string, v cue.Value) (AttributeSpec, error) {
	spec := AttributeSpec{Path: path}

	var err error
	if spec.DisplayName, err = optionalString(cueutil.Lookup(v, "display_name")); err != nil {
		return spec, err
	}
	if spec.Description, err = optionalString(cueutil.Lookup(v, "description")); err != nil {
		return spec, err
	}
	if spec.Description == "" {
		spec.Description = cueutil.DocText(v)
	}
	if spec.Default, err = cueutil.DecodeAny(cueutil.Lookup(v, "default")); err != nil {
		return spec, err
	}

	choice := cueutil.Lookup(v, "choice")
	if choice.Exists() {
		var choices []any
		if err := choice.Decode(&choices); err != nil {
			return spec, fmt.Errorf("attribute %q: choice: %w", path, err)
		}
		spec.Choices = choices
	}
	return spec, nil
}

func cueRecipes(v cue.Value) ([]RecipeDecl, error) {
	fields, err := cueutil.Fields(v)
	if err != nil {
		return nil, err
	}
	out := make([]RecipeDecl, 0, len(fields))
	for _, f := range fields {
		desc, err := f.Value.String()
		if err != nil {
			return nil, fmt.Errorf("recipe %q: %w", f.Label, err)
		}
		out = append(out, RecipeDecl{Name: f.Label, Description: desc})
	}
	return out, nil
}

func cueConstraints(v cue.Value) ([]Constraint, error) {
	fields, err := cueutil.Fields(v)
	if err != nil {
		return nil, err
	}
	out := make([]Constraint, 0, len(fields))
	for _, f := range fields {
		dv, _ := f.Value.Default()
		version, err := dv.String()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Label, err)
		}
		out = append(out, Constraint{Subject: f.Label, Version: constraintVersion(version)})
	}
	return out, nil
}

func optionalString(v cue.Value) (string, error) {
	if !v.Exists() {
		return "", nil
	}
	return v.String()
}
