// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"github.com/charmbracelet/log"

	"github.com/cookdoc/cookdoc/pkg/artifact"
	"github.com/cookdoc/cookdoc/pkg/metadata"
)

type (
	// Layout names the artifact directories of a package, relative to its
	// root, and the file extensions scanned in them.
	Layout struct {
		AttributesDir  string
		ResourcesDir   string
		DefinitionsDir string
		RecipesDir     string
		FragmentsDir   string

		// ArtifactExt is the extension of attribute, resource, definition
		// and recipe files, without the dot.
		ArtifactExt string
		// FragmentExt is the extension of documentation fragments.
		FragmentExt string
	}

	// ResourceParser reads the resource declared in one file.
	ResourceParser func(path, owner string) (artifact.Resource, error)

	// DefinitionParser reads the definition declared in one file.
	DefinitionParser func(path string) (artifact.Definition, error)

	buildOptions struct {
		showConstraints bool
		layout          Layout
		provider        metadata.Provider
		attributes      AttributeParser
		resources       ResourceParser
		definitions     DefinitionParser
		scanner         Scanner
		logger          *log.Logger
	}

	// Option configures Build.
	Option func(*buildOptions)
)

// DefaultLayout returns the conventional package layout.
func DefaultLayout() Layout {
	return Layout{
		AttributesDir:  "attributes",
		ResourcesDir:   "resources",
		DefinitionsDir: "definitions",
		RecipesDir:     "recipes",
		FragmentsDir:   "doc",
		ArtifactExt:    "cue",
		FragmentExt:    "md",
	}
}

func defaultBuildOptions() buildOptions {
	return buildOptions{
		layout:      DefaultLayout(),
		attributes:  artifact.ParseAttributesFile,
		resources:   artifact.ParseResourceFile,
		definitions: artifact.ParseDefinitionFile,
		scanner:     GlobScanner{},
	}
}

// WithConstraints sets whether constraint accessors show version ranges.
func WithConstraints(show bool) Option {
	return func(o *buildOptions) {
		o.showConstraints = show
	}
}

// WithLayout replaces DefaultLayout. Empty fields keep their defaults.
func WithLayout(l Layout) Option {
	return func(o *buildOptions) {
		def := &o.layout
		overrideString(&def.AttributesDir, l.AttributesDir)
		overrideString(&def.ResourcesDir, l.ResourcesDir)
		overrideString(&def.DefinitionsDir, l.DefinitionsDir)
		overrideString(&def.RecipesDir, l.RecipesDir)
		overrideString(&def.FragmentsDir, l.FragmentsDir)
		overrideString(&def.ArtifactExt, l.ArtifactExt)
		overrideString(&def.FragmentExt, l.FragmentExt)
	}
}

// WithMetadataProvider forces a metadata provider instead of choosing one
// by file extension.
func WithMetadataProvider(p metadata.Provider) Option {
	return func(o *buildOptions) {
		o.provider = p
	}
}

// WithAttributeParser replaces artifact.ParseAttributesFile.
func WithAttributeParser(p AttributeParser) Option {
	return func(o *buildOptions) {
		o.attributes = p
	}
}

// WithResourceParser replaces artifact.ParseResourceFile.
func WithResourceParser(p ResourceParser) Option {
	return func(o *buildOptions) {
		o.resources = p
	}
}

// WithDefinitionParser replaces artifact.ParseDefinitionFile.
func WithDefinitionParser(p DefinitionParser) Option {
	return func(o *buildOptions) {
		o.definitions = p
	}
}

// WithScanner replaces GlobScanner.
func WithScanner(s Scanner) Option {
	return func(o *buildOptions) {
		o.scanner = s
	}
}

// WithLogger sets the logger used for debug output. By default Build uses
// the logger stored in its context.
func WithLogger(l *log.Logger) Option {
	return func(o *buildOptions) {
		o.logger = l
	}
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
