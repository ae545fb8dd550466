// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"path/filepath"
	"strings"

	"github.com/cookdoc/cookdoc/pkg/artifact"
	"github.com/cookdoc/cookdoc/pkg/metadata"
)

// PrivatePrefix marks recipe files left out of a directory scan.
const PrivatePrefix = "_"

type (
	// RecipeSource tells where the recipe list of a model came from.
	RecipeSource int

	// Recipe is one documented recipe.
	Recipe struct {
		// QualifiedName is "<package>::<base>" for scanned recipes and the
		// declared name verbatim otherwise.
		QualifiedName string `json:"name" yaml:"name" toml:"name"`
		// Description is empty for scanned recipes.
		Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		SourcePath  string `json:"source_path" yaml:"source_path" toml:"source_path"`
	}
)

const (
	// FromDirectory means the recipes directory was scanned.
	FromDirectory RecipeSource = iota
	// FromMetadata means the metadata file declared the recipes.
	FromMetadata
)

// String returns the lowercase source name.
func (s RecipeSource) String() string {
	switch s {
	case FromMetadata:
		return "metadata"
	case FromDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// RecipeBaseName returns the part of a declared recipe name after its last
// colon: "webapp::tls" gives "tls" and "tls" stays "tls".
func RecipeBaseName(name string) string {
	return name[strings.LastIndex(name, ":")+1:]
}

// AggregateRecipes resolves the recipe list. When the metadata file declares
// recipes they are used as is, with source paths "<dir>/<base>.<ext>", and
// dir is never scanned. Otherwise every file of dir with extension ext is
// listed, skipping those whose base name starts with PrivatePrefix.
func AggregateRecipes(s Scanner, declared []metadata.RecipeDecl, dir, ext, pkgName string) ([]Recipe, RecipeSource, error) {
	if len(declared) > 0 {
		out := make([]Recipe, 0, len(declared))
		for _, d := range declared {
			out = append(out, Recipe{
				QualifiedName: d.Name,
				Description:   d.Description,
				SourcePath:    filepath.Join(dir, RecipeBaseName(d.Name)+"."+ext),
			})
		}
		return out, FromMetadata, nil
	}

	paths, err := s.Scan(dir, extPattern(ext))
	if err != nil {
		return nil, FromDirectory, err
	}
	out := make([]Recipe, 0, len(paths))
	for _, p := range paths {
		base := artifact.BaseName(p)
		if strings.HasPrefix(base, PrivatePrefix) {
			continue
		}
		out = append(out, Recipe{
			QualifiedName: pkgName + "::" + base,
			SourcePath:    p,
		})
	}
	return out, FromDirectory, nil
}
