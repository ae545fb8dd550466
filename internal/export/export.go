// SPDX-License-Identifier: MPL-2.0

// Package export encodes documentation model snapshots as JSON, YAML or TOML.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

const (
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML with two-space indentation.
	FormatYAML Format = "yaml"
	// FormatTOML is TOML.
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for format names Encode does not support.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an encoding.
type Format string

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat resolves a case-insensitive format name. "yml" is accepted
// for YAML.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "yml" {
		f = FormatYAML
	}
	if !slices.Contains(Formats(), f) {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, formatList())
	}
	return f, nil
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s docmodel.Snapshot, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(s)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, f, formatList())
	}
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
