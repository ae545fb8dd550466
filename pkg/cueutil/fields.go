// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/parser"
)

// Field is one regular struct field, in declaration order.
type Field struct {
	Label string
	Value cue.Value
}

// Fields lists the regular fields of the struct at v in the order they were
// declared. A missing value yields no fields.
func Fields(v cue.Value) ([]Field, error) {
	if !v.Exists() {
		return nil, nil
	}
	it, err := v.Fields()
	if err != nil {
		return nil, err
	}
	var out []Field
	for it.Next() {
		out = append(out, Field{
			Label: it.Selector().Unquoted(),
			Value: it.Value(),
		})
	}
	return out, nil
}

// Lookup returns the field of v at the given label path; labels that are
// not identifiers are quoted automatically.
func Lookup(v cue.Value, labels ...string) cue.Value {
	sels := make([]cue.Selector, len(labels))
	for i, l := range labels {
		sels[i] = cue.Str(l)
	}
	return v.LookupPath(cue.MakePath(sels...))
}

// DocText joins the doc comments attached to v.
func DocText(v cue.Value) string {
	var parts []string
	for _, g := range v.Doc() {
		if text := strings.TrimSpace(g.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// LeadingComment returns the first comment group of a CUE file that appears
// before its first declaration, or "" if there is none.
func LeadingComment(data []byte, filename string) (string, error) {
	f, err := parser.ParseFile(filename, data, parser.ParseComments)
	if err != nil {
		return "", FormatError(err, filename)
	}

	groups := ast.Comments(f)
	var first ast.Decl
	if len(f.Decls) > 0 {
		first = f.Decls[0]
		groups = append(groups, ast.Comments(first)...)
	}

	var best *ast.CommentGroup
	for _, g := range groups {
		if g.Line {
			continue
		}
		if first != nil && g.Pos().Compare(first.Pos()) >= 0 {
			continue
		}
		if best == nil || g.Pos().Compare(best.Pos()) < 0 {
			best = g
		}
	}
	return strings.TrimSpace(best.Text()), nil
}

// DecodeAny decodes a concrete CUE value into plain Go values
// (map[string]any, []any, string, bool, numbers). A missing value is nil.
func DecodeAny(v cue.Value) (any, error) {
	if !v.Exists() {
		return nil, nil
	}
	var out any
	if err := v.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", v.Path(), err)
	}
	return out, nil
}
