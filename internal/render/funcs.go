// SPDX-License-Identifier: MPL-2.0

package render

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/template"
	"unicode"

	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

// funcs returns the template functions bound to m. A nil m yields
// placeholders with the same signatures for parsing.
func funcs(m *docmodel.Model) template.FuncMap {
	fragment := func(string) string { return "" }
	if m != nil {
		fragment = func(key string) string {
			text, _ := m.Fragment(key)
			return strings.TrimRight(text, "\n")
		}
	}

	return template.FuncMap{
		"fragment": fragment,
		"join":     strings.Join,
		"code":     code,
		"value":    value,
		"values":   values,
		"has":      has,
		"anchor":   anchor,
	}
}

func code(s string) string {
	return "`" + s + "`"
}

// value renders a default or choice value in JSON notation, so strings keep
// their quotes and lists their brackets.
func value(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func values(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = code(value(v))
	}
	return out
}

// has reports whether v is worth displaying: nil values and empty strings,
// slices and maps are not. False and zero are.
func has(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// anchor mirrors GitHub heading anchors: lower case, spaces become
// hyphens, other punctuation is dropped.
func anchor(heading string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('-')
		}
	}
	return sb.String()
}
