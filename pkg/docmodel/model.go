// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/cookdoc/cookdoc/pkg/artifact"
	"github.com/cookdoc/cookdoc/pkg/metadata"
)

// Model is the documentation model of one package. It is immutable once
// Build returns and safe for concurrent reads.
type Model struct {
	root            string
	meta            *metadata.Metadata
	showConstraints bool

	attributes   []artifact.Attribute
	resources    []artifact.Resource
	definitions  []artifact.Definition
	recipes      []Recipe
	recipeSource RecipeSource
	fragments    map[string]string
}

// Build assembles the model of the package rooted at root. Metadata is read
// first, then attributes, resources, definitions, recipes and fragments.
func Build(ctx context.Context, root string, opts ...Option) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := defaultBuildOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &MetadataLoadError{Root: root, Err: err}
	}

	meta, err := loadMetadata(abs, o.provider)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded metadata", "path", meta.FilePath, "name", meta.Name)

	m := &Model{
		root:            abs,
		meta:            meta,
		showConstraints: o.showConstraints,
	}
	l := o.layout
	dir := func(name string) string { return filepath.Join(abs, name) }
	pattern := extPattern(l.ArtifactExt)

	m.attributes, err = AggregateAttributes(o.scanner, meta.Attributes, meta.FilePath, dir(l.AttributesDir), pattern, o.attributes)
	if err != nil {
		return nil, err
	}
	logger.Debug("collected attributes", "dir", dir(l.AttributesDir), "count", len(m.attributes))

	m.resources, err = ScanEach(o.scanner, dir(l.ResourcesDir), pattern, func(path string) (artifact.Resource, error) {
		return o.resources(path, meta.Name)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("collected resources", "dir", dir(l.ResourcesDir), "count", len(m.resources))

	m.definitions, err = ScanEach(o.scanner, dir(l.DefinitionsDir), pattern, func(path string) (artifact.Definition, error) {
		return o.definitions(path)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("collected definitions", "dir", dir(l.DefinitionsDir), "count", len(m.definitions))

	m.recipes, m.recipeSource, err = AggregateRecipes(o.scanner, meta.Recipes, dir(l.RecipesDir), l.ArtifactExt, meta.Name)
	if err != nil {
		return nil, err
	}
	logger.Debug("collected recipes", "source", m.recipeSource, "count", len(m.recipes))

	m.fragments, err = LoadFragments(o.scanner, dir(l.FragmentsDir), extPattern(l.FragmentExt))
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded fragments", "dir", dir(l.FragmentsDir), "count", len(m.fragments))

	return m, nil
}

func loadMetadata(root string, provider metadata.Provider) (*metadata.Metadata, error) {
	path, err := metadata.Find(root)
	if err != nil {
		return nil, &MetadataLoadError{Root: root, Err: err}
	}
	if provider == nil {
		if provider, err = metadata.ProviderFor(path); err != nil {
			return nil, &MetadataLoadError{Root: root, Path: path, Err: err}
		}
	}
	meta, err := provider.Load(path)
	if err != nil {
		return nil, &MetadataLoadError{Root: root, Path: path, Err: err}
	}
	if meta.FilePath == "" {
		meta.FilePath = path
	}
	return meta, nil
}

// Root returns the absolute package root.
func (m *Model) Root() string { return m.root }

// Name returns the package name.
func (m *Model) Name() string { return m.meta.Name }

// Version returns the package version.
func (m *Model) Version() string { return m.meta.Version }

// Description returns the one-line package description.
func (m *Model) Description() string { return m.meta.Description }

// LongDescription returns the long package description.
func (m *Model) LongDescription() string { return m.meta.LongDescription }

// Maintainer returns the maintainer name.
func (m *Model) Maintainer() string { return m.meta.Maintainer }

// MaintainerEmail returns the maintainer address.
func (m *Model) MaintainerEmail() string { return m.meta.MaintainerEmail }

// License returns the license identifier.
func (m *Model) License() string { return m.meta.License }

// SourceURL returns the source repository URL.
func (m *Model) SourceURL() string { return m.meta.SourceURL }

// IssuesURL returns the issue tracker URL.
func (m *Model) IssuesURL() string { return m.meta.IssuesURL }

// ShowConstraints reports whether version ranges are displayed.
func (m *Model) ShowConstraints() bool { return m.showConstraints }

// Attributes returns every documented attribute, metadata-declared first.
func (m *Model) Attributes() []artifact.Attribute { return slices.Clone(m.attributes) }

// Resources returns the resources sorted by file name.
func (m *Model) Resources() []artifact.Resource { return slices.Clone(m.resources) }

// Definitions returns the definitions sorted by file name.
func (m *Model) Definitions() []artifact.Definition { return slices.Clone(m.definitions) }

// Recipes returns the recipes resolved by AggregateRecipes.
func (m *Model) Recipes() []Recipe { return slices.Clone(m.recipes) }

// RecipeSource tells whether recipes were declared or scanned.
func (m *Model) RecipeSource() RecipeSource { return m.recipeSource }

// Fragments returns the documentation fragments keyed by base name.
func (m *Model) Fragments() map[string]string { return maps.Clone(m.fragments) }

// Fragment returns one documentation fragment.
func (m *Model) Fragment(key string) (string, bool) {
	text, ok := m.fragments[key]
	return text, ok
}

// FragmentKeys returns the fragment keys in sorted order.
func (m *Model) FragmentKeys() []string {
	keys := maps.Keys(m.fragments)
	slices.Sort(keys)
	return keys
}

// Platforms returns the supported platforms, capitalized.
func (m *Model) Platforms() []string {
	return formatConstraints(m.meta.Platforms, m.showConstraints, capitalize)
}

// Dependencies returns the required cookbooks.
func (m *Model) Dependencies() []string {
	return formatConstraints(m.meta.Dependencies, m.showConstraints, verbatim)
}

// Recommendations returns the recommended cookbooks.
func (m *Model) Recommendations() []string {
	return formatConstraints(m.meta.Recommendations, m.showConstraints, verbatim)
}

// Suggestions returns the suggested cookbooks.
func (m *Model) Suggestions() []string {
	return formatConstraints(m.meta.Suggestions, m.showConstraints, verbatim)
}

// Conflicting returns the conflicting cookbooks.
func (m *Model) Conflicting() []string {
	return formatConstraints(m.meta.Conflicting, m.showConstraints, verbatim)
}

// Metadata returns a copy of the facts read from the metadata file.
func (m *Model) Metadata() *metadata.Metadata {
	md := *m.meta
	md.Attributes = slices.Clone(md.Attributes)
	md.Recipes = slices.Clone(md.Recipes)
	md.Platforms = slices.Clone(md.Platforms)
	md.Dependencies = slices.Clone(md.Dependencies)
	md.Recommendations = slices.Clone(md.Recommendations)
	md.Suggestions = slices.Clone(md.Suggestions)
	md.Conflicting = slices.Clone(md.Conflicting)
	return &md
}
