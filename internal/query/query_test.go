// SPDX-License-Identifier: MPL-2.0

package query

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/cookdoc/cookdoc/internal/testutil"
	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

const testMetadata = `
name:    "webapp"
version: "1.4.0"

attributes: {
	"db/user": {
		description: "Database user"
		default:     "app"
	}
	"db/password": description: "Database password"
}

depends: nginx: "~> 2.1"
`

func testModel(t *testing.T) *docmodel.Model {
	t.Helper()

	root := testutil.NewPackage(t, map[string]string{
		"metadata.cue":        testMetadata,
		"recipes/default.cue": "",
		"recipes/tls.cue":     "",
		"doc/intro.md":        "Welcome.\n",
	})
	m, err := docmodel.Build(context.Background(), root,
		docmodel.WithConstraints(true),
		docmodel.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return m
}

func TestEval(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"concat", `name + "@" + version`, "webapp@1.4.0"},
		{"len", `len(recipes)`, 2},
		{"predicate", `len(recipes) > 0`, true},
		{"field access", `recipes[1].QualifiedName`, "webapp::tls"},
		{"filter", `map(filter(attributes, .Default == nil), .Path)`, []any{"node['db']['password']"}},
		{"formatted constraints", `dependencies`, []string{"nginx (~> 2.1)"}},
		{"recipe source", `recipe_source`, "directory"},
		{"fragment function", `fragment("intro")`, "Welcome.\n"},
		{"missing fragment", `fragment("usage")`, ""},
		{"fragment map", `fragments["intro"]`, "Welcome.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Eval(tt.expr, m)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.expr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Eval(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	tests := []struct {
		name string
		expr string
	}{
		{"syntax", `name +`},
		{"unknown variable", `nonexistent > 1`},
		{"type mismatch", `name + 1`},
		{"runtime index", `recipes[10].QualifiedName`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Eval(tt.expr, m)
			if err == nil {
				t.Fatalf("Eval(%q): want error", tt.expr)
			}
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("Eval(%q) error = %v, want ErrInvalidQuery", tt.expr, err)
			}
			var qerr *Error
			if !errors.As(err, &qerr) || qerr.Expression != tt.expr {
				t.Errorf("Eval(%q) error = %#v, want *Error with expression", tt.expr, err)
			}
		})
	}
}

func TestCompile_Reuse(t *testing.T) {
	t.Parallel()

	q, err := Compile(`len(attributes)`, testModel(t))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if q.String() != `len(attributes)` {
		t.Errorf("String() = %q", q.String())
	}
	for range 2 {
		got, err := q.Run()
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if got != 2 {
			t.Errorf("Run() = %v, want 2", got)
		}
	}
}
