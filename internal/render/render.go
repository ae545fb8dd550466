// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

//go:embed readme.md.tmpl
var defaultTemplate string

// DefaultTemplateName names the built-in template in error messages.
const DefaultTemplateName = "readme.md.tmpl"

// Renderer executes a README template against documentation models.
// It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the built-in template.
func New() (*Renderer, error) {
	return Parse(DefaultTemplateName, defaultTemplate)
}

// NewFromFile parses the template stored at path.
func NewFromFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return Parse(filepath.Base(path), string(data))
}

// Parse parses text as a template called name.
func Parse(name, text string) (*Renderer, error) {
	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(funcs(nil)).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// DefaultTemplate returns the text of the built-in template.
func DefaultTemplate() string {
	return defaultTemplate
}

// Render writes the README of m to w.
func (r *Renderer) Render(w io.Writer, m *docmodel.Model) error {
	tmpl, err := r.tmpl.Clone()
	if err != nil {
		return fmt.Errorf("clone template: %w", err)
	}
	tmpl.Funcs(funcs(m))

	if err := tmpl.Execute(w, m.Context()); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}

// RenderString returns the README of m.
func (r *Renderer) RenderString(m *docmodel.Model) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
