// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/cookdoc/cookdoc/pkg/cueutil"
)

type (
	// HCLProvider reads metadata.hcl files:
	//
	//	name    = "webapp"
	//	version = "1.2.0"
	//
	//	attribute "webapp/port" {
	//	  description = "Listen port"
	//	  default     = 8080
	//	}
	//
	//	recipe "webapp::default" {
	//	  description = "Installs the application"
	//	}
	//
	//	supports "ubuntu" { version = ">= 22.04" }
	//	depends "nginx" {}
	HCLProvider struct{}

	hclMetadata struct {
		Name            string `hcl:"name"`
		Version         string `hcl:"version,optional"`
		Description     string `hcl:"description,optional"`
		LongDescription string `hcl:"long_description,optional"`
		Maintainer      string `hcl:"maintainer,optional"`
		MaintainerEmail string `hcl:"maintainer_email,optional"`
		License         string `hcl:"license,optional"`
		SourceURL       string `hcl:"source_url,optional"`
		IssuesURL       string `hcl:"issues_url,optional"`

		Attributes []*hclAttribute  `hcl:"attribute,block"`
		Recipes    []*hclRecipe     `hcl:"recipe,block"`
		Supports   []*hclConstraint `hcl:"supports,block"`
		Depends    []*hclConstraint `hcl:"depends,block"`
		Recommends []*hclConstraint `hcl:"recommends,block"`
		Suggests   []*hclConstraint `hcl:"suggests,block"`
		Conflicts  []*hclConstraint `hcl:"conflicts,block"`
	}

	hclAttribute struct {
		Path        string         `hcl:"path,label"`
		DisplayName string         `hcl:"display_name,optional"`
		Description string         `hcl:"description,optional"`
		Default     hcl.Expression `hcl:"default,optional"`
		Choice      hcl.Expression `hcl:"choice,optional"`
	}

	hclRecipe struct {
		Name        string `hcl:"name,label"`
		Description string `hcl:"description,optional"`
	}

	hclConstraint struct {
		Subject string `hcl:"subject,label"`
		Version string `hcl:"version,optional"`
	}
)

// Load implements Provider.
func (HCLProvider) Load(path string) (*Metadata, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := cueutil.CheckFileSize(src, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var raw hclMetadata
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if err := ValidateName(raw.Name); err != nil {
		return nil, fmt.Errorf("%s: name: %w", path, err)
	}

	md := &Metadata{
		Name:            raw.Name,
		Version:         raw.Version,
		Description:     raw.Description,
		LongDescription: raw.LongDescription,
		Maintainer:      raw.Maintainer,
		MaintainerEmail: raw.MaintainerEmail,
		License:         raw.License,
		SourceURL:       raw.SourceURL,
		IssuesURL:       raw.IssuesURL,
		Attributes:      make([]AttributeSpec, 0, len(raw.Attributes)),
		Recipes:         make([]RecipeDecl, 0, len(raw.Recipes)),
		Platforms:       hclConstraints(raw.Supports),
		Dependencies:    hclConstraints(raw.Depends),
		Recommendations: hclConstraints(raw.Recommends),
		Suggestions:     hclConstraints(raw.Suggests),
		Conflicting:     hclConstraints(raw.Conflicts),
		FilePath:        path,
	}

	for _, a := range raw.Attributes {
		spec := AttributeSpec{Path: a.Path, DisplayName: a.DisplayName, Description: a.Description}
		if spec.Default, err = exprValue(a.Default); err != nil {
			return nil, fmt.Errorf("%s: attribute %q: default: %w", path, a.Path, err)
		}
		choice, err := exprValue(a.Choice)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: choice: %w", path, a.Path, err)
		}
		if choice != nil {
			list, ok := choice.([]any)
			if !ok {
				return nil, fmt.Errorf("%s: attribute %q: choice must be a list", path, a.Path)
			}
			spec.Choices = list
		}
		md.Attributes = append(md.Attributes, spec)
	}

	for _, r := range raw.Recipes {
		md.Recipes = append(md.Recipes, RecipeDecl{Name: r.Name, Description: r.Description})
	}

	return md, nil
}

func hclConstraints(blocks []*hclConstraint) []Constraint {
	out := make([]Constraint, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, Constraint{Subject: b.Subject, Version: constraintVersion(b.Version)})
	}
	return out
}

// exprValue evaluates a literal expression into plain Go values. A missing
// attribute (a null expression) yields nil.
func exprValue(expr hcl.Expression) (any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be a literal")
	}

	data, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return integralNumbers(out), nil
}

// integralNumbers turns whole float64 values back into int64 so HCL and CUE
// metadata yield the same Go types for integer defaults.
func integralNumbers(v any) any {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x)
		}
		return x
	case []any:
		for i := range x {
			x[i] = integralNumbers(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = integralNumbers(x[k])
		}
		return x
	default:
		return v
	}
}
