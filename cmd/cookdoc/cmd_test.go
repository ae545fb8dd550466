// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cookdoc/cookdoc/internal/config"
	"github.com/cookdoc/cookdoc/internal/export"
	"github.com/cookdoc/cookdoc/internal/issue"
	"github.com/cookdoc/cookdoc/internal/query"
	"github.com/cookdoc/cookdoc/internal/testutil"
)

const testMetadata = `
name:        "webapp"
version:     "1.4.0"
description: "Installs the web tier"
maintainer:  "Ops Team"
license:     "Apache-2.0"

supports: ubuntu: ">= 22.04"
depends: nginx:   "~> 2.1"
`

// staticConfig is a ConfigProvider returning a fixed result.
type staticConfig struct {
	cfg *config.Config
	err error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := *s.cfg
	return &cfg, nil
}

func defaultsProvider() staticConfig {
	return staticConfig{cfg: config.DefaultConfig()}
}

// fixturePackage writes a minimal package and returns its root.
func fixturePackage(t *testing.T) string {
	t.Helper()

	return testutil.NewPackage(t, map[string]string{
		"metadata.cue":        testMetadata,
		"recipes/default.cue": "",
		"doc/usage.md":        "Include the default recipe.\n",
	})
}

// runCLI executes the command tree without fang and returns what the
// commands wrote.
func runCLI(t *testing.T, provider ConfigProvider, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &stdout, Stderr: &stderr})
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SilenceUsage = true

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRenderCommand_Write(t *testing.T) {
	t.Parallel()

	root := fixturePackage(t)
	stdout, _, err := runCLI(t, defaultsProvider(), "render", root)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatalf("read README: %v", err)
	}
	for _, want := range []string{"Installs the web tier", "* Ubuntu\n", "* nginx\n", "webapp::default", "# Usage"} {
		if !strings.Contains(string(readme), want) {
			t.Errorf("README missing %q", want)
		}
	}
	if !strings.Contains(stdout, "Wrote") {
		t.Errorf("stdout = %q, want write confirmation", stdout)
	}
}

func TestRenderCommand_ConfigAndFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output = "DOCS.md"
	cfg.Constraints = true
	provider := staticConfig{cfg: cfg}

	root := fixturePackage(t)
	if _, _, err := runCLI(t, provider, "render", root); err != nil {
		t.Fatalf("render error: %v", err)
	}
	docs, err := os.ReadFile(filepath.Join(root, "DOCS.md"))
	if err != nil {
		t.Fatalf("configured output not written: %v", err)
	}
	if !strings.Contains(string(docs), "* Ubuntu (>= 22.04)\n") {
		t.Error("configured constraints not applied")
	}

	stdout, _, err := runCLI(t, provider, "render", root, "--stdout", "--constraints=false")
	if err != nil {
		t.Fatalf("render --stdout error: %v", err)
	}
	if !strings.Contains(stdout, "* Ubuntu\n") {
		t.Errorf("--constraints=false did not override configuration:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "README.md")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("--stdout wrote a file: %v", err)
	}
}

func TestRenderCommand_Check(t *testing.T) {
	t.Parallel()

	root := fixturePackage(t)

	_, _, err := runCLI(t, defaultsProvider(), "render", root, "--check")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitCodeStale {
		t.Fatalf("check before render error = %v, want ExitError with code %d", err, ExitCodeStale)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.ReadmeStaleId {
		t.Errorf("check error = %#v, want ReadmeStaleId", err)
	}

	if _, _, err := runCLI(t, defaultsProvider(), "render", root); err != nil {
		t.Fatalf("render error: %v", err)
	}
	stdout, _, err := runCLI(t, defaultsProvider(), "render", root, "--check")
	if err != nil {
		t.Fatalf("check after render error: %v", err)
	}
	if !strings.Contains(stdout, "up to date") {
		t.Errorf("stdout = %q", stdout)
	}

	// A new recipe makes the README stale again.
	if err := os.WriteFile(filepath.Join(root, "recipes", "tls.cue"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	stdout, _, err = runCLI(t, defaultsProvider(), "render", root, "--check")
	if !errors.As(err, &exitErr) {
		t.Fatalf("check after change error = %v, want ExitError", err)
	}
	if !strings.Contains(stdout, "+* [webapp::tls](#webapptls)") {
		t.Errorf("diff missing new recipe:\n%s", stdout)
	}
}

func TestRenderCommand_CustomTemplate(t *testing.T) {
	t.Parallel()

	root := fixturePackage(t)
	tmpl := filepath.Join(t.TempDir(), "short.tmpl")
	if err := os.WriteFile(tmpl, []byte("{{ .name }} {{ .version }}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, defaultsProvider(), "render", root, "--stdout", "--template", tmpl)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if stdout != "webapp 1.4.0\n" {
		t.Errorf("stdout = %q", stdout)
	}

	broken := filepath.Join(t.TempDir(), "broken.tmpl")
	if err := os.WriteFile(broken, []byte("{{ .name "), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = runCLI(t, defaultsProvider(), "render", root, "--stdout", "--template", broken)
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.TemplateErrorId {
		t.Errorf("broken template error = %v, want TemplateErrorId", err)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, defaultsProvider(), "render", t.TempDir())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.MetadataNotFoundId {
		t.Errorf("missing metadata error = %v, want MetadataNotFoundId", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || len(ae.Suggestions) == 0 {
		t.Errorf("missing metadata error = %v, want ActionableError with suggestions", err)
	}

	if _, _, err := runCLI(t, defaultsProvider(), "render", fixturePackage(t), "--stdout", "--check"); err == nil {
		t.Error("--stdout with --check: want error")
	}
	if _, _, err := runCLI(t, defaultsProvider(), "render", "a", "b"); err == nil {
		t.Error("two directories: want error")
	}
}

func TestRootCommand_ConfigLoadFailure(t *testing.T) {
	t.Parallel()

	provider := staticConfig{err: errors.New("boom")}
	stdout, stderr, err := runCLI(t, provider, "render", fixturePackage(t), "--stdout")
	if err != nil {
		t.Fatalf("render with broken config error: %v", err)
	}
	if !strings.Contains(stderr, "boom") {
		t.Errorf("stderr = %q, want config warning", stderr)
	}
	if !strings.Contains(stdout, "webapp::default") {
		t.Error("render did not fall back to default configuration")
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	if _, _, err := runCLI(t, defaultsProvider(), "--log-level", "loud", "template"); err == nil {
		t.Error("invalid --log-level: want error")
	}
}

func TestModelCommand(t *testing.T) {
	t.Parallel()

	root := fixturePackage(t)

	stdout, _, err := runCLI(t, defaultsProvider(), "model", root, "--format", "yaml")
	if err != nil {
		t.Fatalf("model error: %v", err)
	}
	for _, want := range []string{"name: webapp", "recipe_source: directory", "- Ubuntu"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("yaml output missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = runCLI(t, defaultsProvider(), "model", root, "--constraints")
	if err != nil {
		t.Fatalf("model json error: %v", err)
	}
	if !strings.Contains(stdout, `"Ubuntu (>= 22.04)"`) {
		t.Errorf("json output missing constraint:\n%s", stdout)
	}

	_, _, err = runCLI(t, defaultsProvider(), "model", root, "--format", "xml")
	if !errors.Is(err, export.ErrUnknownFormat) {
		t.Errorf("model --format xml error = %v, want ErrUnknownFormat", err)
	}
}

func TestQueryCommand(t *testing.T) {
	t.Parallel()

	root := fixturePackage(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"string result", []string{"query", root, "name"}, "webapp\n"},
		{"number result", []string{"query", root, "len(recipes)"}, "1\n"},
		{"list result", []string{"query", root, "dependencies"}, "[\n  \"nginx\"\n]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, defaultsProvider(), tt.args...)
			if err != nil {
				t.Fatalf("query error: %v", err)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}

	_, _, err := runCLI(t, defaultsProvider(), "query", root, "name +")
	if !errors.Is(err, query.ErrInvalidQuery) {
		t.Errorf("invalid query error = %v, want ErrInvalidQuery", err)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.InvalidQueryId {
		t.Errorf("invalid query error = %v, want InvalidQueryId", err)
	}
}

func TestTemplateCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, defaultsProvider(), "template")
	if err != nil {
		t.Fatalf("template error: %v", err)
	}
	if !strings.HasPrefix(stdout, "# Description") {
		t.Errorf("stdout = %q", stdout[:min(len(stdout), 40)])
	}
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, defaultsProvider(), "config", "dump")
	if err != nil {
		t.Fatalf("config dump error: %v", err)
	}
	if !strings.Contains(stdout, `output:      "README.md"`) {
		t.Errorf("config dump = %q", stdout)
	}

	stdout, _, err = runCLI(t, defaultsProvider(), "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{"Current Configuration", "(using defaults)", "preview_width"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q", want)
		}
	}

	_, _, err = runCLI(t, staticConfig{err: errors.New("boom")}, "config", "show")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.ConfigLoadFailedId {
		t.Errorf("config show error = %v, want ConfigLoadFailedId", err)
	}

	path := filepath.Join(t.TempDir(), "cookdoc", "config.cue")
	stdout, _, err = runCLI(t, defaultsProvider(), "--config", path, "config", "path")
	if err != nil || strings.TrimSpace(stdout) != path {
		t.Errorf("config path = %q, %v", stdout, err)
	}
	for _, want := range []string{"Created", "already exists"} {
		stdout, _, err = runCLI(t, defaultsProvider(), "--config", path, "config", "init")
		if err != nil || !strings.Contains(stdout, want) {
			t.Errorf("config init = %q, %v; want %q", stdout, err, want)
		}
	}
}
