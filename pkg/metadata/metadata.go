// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	// DefaultConstraint is the open version range assumed when a
	// dependency or platform is declared without a version.
	DefaultConstraint = ">= 0.0.0"

	// CUEFileName is the CUE metadata file name.
	CUEFileName = "metadata.cue"
	// HCLFileName is the HCL metadata file name.
	HCLFileName = "metadata.hcl"
)

var (
	// ErrNotFound is returned when a package directory has no metadata file.
	ErrNotFound = errors.New("metadata file not found")

	// ErrUnsupportedFormat is returned for metadata files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported metadata format")

	// ErrInvalidName is returned for package names that are empty or use
	// characters outside [A-Za-z0-9_.-].
	ErrInvalidName = errors.New("invalid package name")

	// namePattern mirrors the name constraint of metadata_schema.cue.
	namePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

	// fileNames lists the recognized metadata files in lookup order.
	fileNames = []string{CUEFileName, HCLFileName}
)

type (
	// Constraint pairs a platform or cookbook name with a version range.
	Constraint struct {
		Subject string `json:"subject"`
		Version string `json:"version"`
	}

	// AttributeSpec is an attribute declared in the metadata file. Path is
	// the raw slash-delimited key ("db/user").
	AttributeSpec struct {
		Path        string `json:"path"`
		DisplayName string `json:"display_name,omitempty"`
		Description string `json:"description,omitempty"`
		Default     any    `json:"default,omitempty"`
		Choices     []any  `json:"choice,omitempty"`
	}

	// RecipeDecl is a recipe declared in the metadata file.
	RecipeDecl struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	// Metadata holds the facts read from a metadata file. Slices keep the
	// declaration order of the source file.
	Metadata struct {
		Name            string
		Version         string
		Description     string
		LongDescription string
		Maintainer      string
		MaintainerEmail string
		License         string
		SourceURL       string
		IssuesURL       string

		Attributes      []AttributeSpec
		Recipes         []RecipeDecl
		Platforms       []Constraint
		Dependencies    []Constraint
		Recommendations []Constraint
		Suggestions     []Constraint
		Conflicting     []Constraint

		// FilePath is the file the metadata was read from.
		FilePath string
	}

	// Provider reads one metadata file.
	Provider interface {
		Load(path string) (*Metadata, error)
	}
)

// Find returns the path of the metadata file in root. metadata.cue wins
// over metadata.hcl when both exist.
func Find(root string) (string, error) {
	for _, name := range fileNames {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s, %s)", ErrNotFound, root, CUEFileName, HCLFileName)
}

// ProviderFor picks the provider matching the extension of path.
func ProviderFor(path string) (Provider, error) {
	switch filepath.Ext(path) {
	case ".cue":
		return CUEProvider{}, nil
	case ".hcl":
		return HCLProvider{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load finds and reads the metadata file of the package rooted at root.
func Load(root string) (*Metadata, error) {
	path, err := Find(root)
	if err != nil {
		return nil, err
	}
	p, err := ProviderFor(path)
	if err != nil {
		return nil, err
	}
	return p.Load(path)
}

// constraintVersion normalizes an empty version to DefaultConstraint.
func constraintVersion(v string) string {
	if v == "" {
		return DefaultConstraint
	}
	return v
}

// ValidateName checks a package name against the rule every provider
// enforces.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w %q: must match %s", ErrInvalidName, name, namePattern)
	}
	return nil
}
