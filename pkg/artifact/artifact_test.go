// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cookdoc/cookdoc/pkg/metadata"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestNodePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "db/user", want: "node['db']['user']"},
		{key: "port", want: "node['port']"},
		{key: "a/b/c", want: "node['a']['b']['c']"},
	}

	for _, tt := range tests {
		if got := NodePath(tt.key); got != tt.want {
			t.Errorf("NodePath(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFromSpec(t *testing.T) {
	t.Parallel()

	got := FromSpec(metadata.AttributeSpec{
		Path:        "db/user",
		Description: "Database user",
		Default:     "app",
	}, "metadata.cue")

	want := Attribute{
		Path:        "node['db']['user']",
		Description: "Database user",
		Default:     "app",
		Source:      "metadata.cue",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromSpec() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAttributesFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "default.cue", `
"app/port": {
	description: "Listen port"
	default:     8080
}

"app/mode": {
	default: "prod"
	choice: ["prod", "dev"]
}

// Extra JVM flags.
"app/java_opts": {}
`)

	got, err := ParseAttributesFile(path)
	if err != nil {
		t.Fatalf("ParseAttributesFile() error: %v", err)
	}

	want := []Attribute{
		{Path: "node['app']['port']", Description: "Listen port", Default: int64(8080), Source: path},
		{Path: "node['app']['mode']", Default: "prod", Choices: []any{"prod", "dev"}, Source: path},
		{Path: "node['app']['java_opts']", Description: "Extra JVM flags.", Source: path},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAttributesFile_Empty(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "empty.cue", "")
	got, err := ParseAttributesFile(path)
	if err != nil {
		t.Fatalf("ParseAttributesFile() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ParseAttributesFile() = %#v, want empty non-nil slice", got)
	}
}

func TestParseResourceFile(t *testing.T) {
	t.Parallel()

	t.Run("declared fields", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "site.cue", `
name:           "webapp_vhost"
description:    "Manages a virtual host"
actions: ["create", "delete"]
default_action: "create"
properties: {
	server_name: {
		type:     "string"
		required: true
	}
	// Port to bind.
	port: {
		type:    "integer"
		default: 80
	}
}
`)
		got, err := ParseResourceFile(path, "webapp")
		if err != nil {
			t.Fatalf("ParseResourceFile() error: %v", err)
		}

		want := Resource{
			Name:          "webapp_vhost",
			Description:   "Manages a virtual host",
			Owner:         "webapp",
			Actions:       []string{"create", "delete"},
			DefaultAction: "create",
			Properties: []Property{
				{Name: "server_name", Type: "string", Required: true},
				{Name: "port", Type: "integer", Default: int64(80), Description: "Port to bind."},
			},
			SourcePath: path,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("resource mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("derived name and leading comment", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "user.cue", "// Manages local users.\n\nactions: [\"create\"]\n")
		got, err := ParseResourceFile(path, "webapp")
		if err != nil {
			t.Fatalf("ParseResourceFile() error: %v", err)
		}
		if got.Name != "webapp_user" {
			t.Errorf("Name = %q, want %q", got.Name, "webapp_user")
		}
		if got.Description != "Manages local users." {
			t.Errorf("Description = %q, want %q", got.Description, "Manages local users.")
		}
		if got.Owner != "webapp" {
			t.Errorf("Owner = %q, want %q", got.Owner, "webapp")
		}
	})
}

func TestParseDefinitionFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "app_config.cue", `// Renders an application config file.
params: {
	path: description: "Destination path"
	mode: default: "0644"
}
`)
	got, err := ParseDefinitionFile(path)
	if err != nil {
		t.Fatalf("ParseDefinitionFile() error: %v", err)
	}

	want := Definition{
		Name:        "app_config",
		Description: "Renders an application config file.",
		Params: []Param{
			{Name: "path", Description: "Destination path"},
			{Name: "mode", Default: "0644"},
		},
		SourcePath: path,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		file  string
		body  string
		parse func(path string) error
	}{
		{
			name: "attribute choice not a list",
			file: "bad.cue",
			body: `"a/b": choice: "one"`,
			parse: func(p string) error {
				_, err := ParseAttributesFile(p)
				return err
			},
		},
		{
			name: "resource unknown field",
			file: "bad.cue",
			body: `colour: "red"`,
			parse: func(p string) error {
				_, err := ParseResourceFile(p, "x")
				return err
			},
		},
		{
			name: "definition syntax error",
			file: "bad.cue",
			body: `params: {`,
			parse: func(p string) error {
				_, err := ParseDefinitionFile(p)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), tt.file, tt.body)
			err := tt.parse(path)
			if err == nil {
				t.Fatal("expected error")
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if pe.Path != path {
				t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
			}
			if !errors.Is(err, ErrParse) {
				t.Error("errors.Is(err, ErrParse) = false")
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q should name the file", err)
			}
		})
	}
}

func TestParseError_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseDefinitionFile(filepath.Join(t.TempDir(), "missing.cue"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should wrap os.ErrNotExist", err)
	}
}
