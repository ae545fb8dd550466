// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"github.com/cookdoc/cookdoc/pkg/artifact"
)

// Snapshot is a plain copy of a Model, with constraint lists already
// formatted, for encoding.
type Snapshot struct {
	Name            string `json:"name" yaml:"name" toml:"name"`
	Version         string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	LongDescription string `json:"long_description,omitempty" yaml:"long_description,omitempty" toml:"long_description,omitempty"`
	Maintainer      string `json:"maintainer,omitempty" yaml:"maintainer,omitempty" toml:"maintainer,omitempty"`
	MaintainerEmail string `json:"maintainer_email,omitempty" yaml:"maintainer_email,omitempty" toml:"maintainer_email,omitempty"`
	License         string `json:"license,omitempty" yaml:"license,omitempty" toml:"license,omitempty"`
	SourceURL       string `json:"source_url,omitempty" yaml:"source_url,omitempty" toml:"source_url,omitempty"`
	IssuesURL       string `json:"issues_url,omitempty" yaml:"issues_url,omitempty" toml:"issues_url,omitempty"`

	Platforms       []string `json:"platforms" yaml:"platforms" toml:"platforms"`
	Dependencies    []string `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	Recommendations []string `json:"recommendations" yaml:"recommendations" toml:"recommendations"`
	Suggestions     []string `json:"suggestions" yaml:"suggestions" toml:"suggestions"`
	Conflicting     []string `json:"conflicting" yaml:"conflicting" toml:"conflicting"`

	Attributes   []artifact.Attribute  `json:"attributes" yaml:"attributes" toml:"attributes"`
	Resources    []artifact.Resource   `json:"resources" yaml:"resources" toml:"resources"`
	Definitions  []artifact.Definition `json:"definitions" yaml:"definitions" toml:"definitions"`
	Recipes      []Recipe              `json:"recipes" yaml:"recipes" toml:"recipes"`
	RecipeSource string                `json:"recipe_source" yaml:"recipe_source" toml:"recipe_source"`

	Fragments map[string]string `json:"fragments" yaml:"fragments" toml:"fragments"`
}

// Snapshot copies the model into a Snapshot.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Name:            m.Name(),
		Version:         m.Version(),
		Description:     m.Description(),
		LongDescription: m.LongDescription(),
		Maintainer:      m.Maintainer(),
		MaintainerEmail: m.MaintainerEmail(),
		License:         m.License(),
		SourceURL:       m.SourceURL(),
		IssuesURL:       m.IssuesURL(),
		Platforms:       m.Platforms(),
		Dependencies:    m.Dependencies(),
		Recommendations: m.Recommendations(),
		Suggestions:     m.Suggestions(),
		Conflicting:     m.Conflicting(),
		Attributes:      m.Attributes(),
		Resources:       m.Resources(),
		Definitions:     m.Definitions(),
		Recipes:         m.Recipes(),
		RecipeSource:    m.RecipeSource().String(),
		Fragments:       m.Fragments(),
	}
}

// Context returns the evaluation context handed to templates and queries:
// every accessor of the model under its snake_case name.
func (m *Model) Context() map[string]any {
	return map[string]any{
		"name":             m.Name(),
		"version":          m.Version(),
		"description":      m.Description(),
		"long_description": m.LongDescription(),
		"maintainer":       m.Maintainer(),
		"maintainer_email": m.MaintainerEmail(),
		"license":          m.License(),
		"source_url":       m.SourceURL(),
		"issues_url":       m.IssuesURL(),
		"platforms":        m.Platforms(),
		"dependencies":     m.Dependencies(),
		"recommendations":  m.Recommendations(),
		"suggestions":      m.Suggestions(),
		"conflicting":      m.Conflicting(),
		"attributes":       m.Attributes(),
		"resources":        m.Resources(),
		"definitions":      m.Definitions(),
		"recipes":          m.Recipes(),
		"recipe_source":    m.RecipeSource().String(),
		"fragments":        m.Fragments(),
		"show_constraints": m.ShowConstraints(),
	}
}
