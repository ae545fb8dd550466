// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/cookdoc/cookdoc/internal/testutil"
)

func TestScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"res/b.cue":          "",
		"res/a.cue":          "",
		"res/notes.txt":      "",
		"res/nested/c.cue":   "",
		"res/dir.cue/keep.x": "",
	})

	got, err := Scan(filepath.Join(root, "res"), "*.cue")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	want := []string{
		filepath.Join(root, "res", "a.cue"),
		filepath.Join(root, "res", "b.cue"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	t.Parallel()

	got, err := Scan(filepath.Join(t.TempDir(), "missing"), "*.cue")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Scan() = %#v, want empty non-nil slice", got)
	}
}

func TestScan_NotADirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Scan(path, "*.cue")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Scan() error = %v, want *NotFoundError", err)
	}
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("errors.Is(err, ErrNotDirectory) = false for %v", err)
	}
}

func TestScan_SkipsHiddenFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"res/default.cue":   "",
		"res/.#default.cue": "",
		"res/._tls.cue":     "",
	})

	got, err := Scan(filepath.Join(root, "res"), "*.cue")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(root, "res", "default.cue")}, got); diff != "" {
		t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
	}

	t.Run("build ignores hidden artifacts", func(t *testing.T) {
		t.Parallel()

		pkg := testutil.NewPackage(t, map[string]string{
			"metadata.cue":             fixtureMetadata,
			"attributes/._default.cue": "\x00\x05\x16\x07 not cue",
			"resources/.#vhost.cue":    "user@host.1234:1700000000",
			"recipes/default.cue":      "",
			"recipes/.hidden.cue":      "",
			"recipes/._tls.cue":        "",
			"doc/intro.md":             "Welcome.\n",
			"doc/._intro.md":           "\x00\x05",
		})

		m, err := Build(context.Background(), pkg, WithLogger(log.New(io.Discard)))
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}

		var recipes []string
		for _, r := range m.Recipes() {
			recipes = append(recipes, r.QualifiedName)
		}
		if diff := cmp.Diff([]string{"webapp::default"}, recipes); diff != "" {
			t.Errorf("recipes mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"intro"}, m.FragmentKeys()); diff != "" {
			t.Errorf("fragment keys mismatch (-want +got):\n%s", diff)
		}
		if n := len(m.Resources()); n != 0 {
			t.Errorf("len(Resources()) = %d, want 0", n)
		}
		if n := len(m.Attributes()); n != 1 {
			t.Errorf("len(Attributes()) = %d, want 1 (metadata only)", n)
		}
	})
}

func TestScan_UnreadableDirectory(t *testing.T) {
	t.Parallel()
	skipIfPermissionsIgnored(t)

	dir := filepath.Join(t.TempDir(), "res")
	testutil.WriteTree(t, dir, map[string]string{"a.cue": ""})
	if err := os.Chmod(dir, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := Scan(dir, "*.cue")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Scan() error = %v, want *NotFoundError", err)
	}
	if nf.Path != dir {
		t.Errorf("NotFoundError.Path = %q, want %q", nf.Path, dir)
	}
}

func TestScanEach(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"a.cue": "", "b.cue": "", "c.cue": ""})

	t.Run("builds in path order", func(t *testing.T) {
		t.Parallel()

		got, err := ScanEach(GlobScanner{}, root, "*.cue", func(p string) (string, error) {
			return filepath.Base(p), nil
		})
		if err != nil {
			t.Fatalf("ScanEach() error: %v", err)
		}
		if diff := cmp.Diff([]string{"a.cue", "b.cue", "c.cue"}, got); diff != "" {
			t.Errorf("ScanEach() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("first error aborts", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		var built []string
		_, err := ScanEach(GlobScanner{}, root, "*.cue", func(p string) (string, error) {
			if filepath.Base(p) == "b.cue" {
				return "", errBoom
			}
			built = append(built, filepath.Base(p))
			return filepath.Base(p), nil
		})
		if !errors.Is(err, errBoom) {
			t.Fatalf("ScanEach() error = %v, want %v", err, errBoom)
		}
		if diff := cmp.Diff([]string{"a.cue"}, built); diff != "" {
			t.Errorf("built entries mismatch (-want +got):\n%s", diff)
		}
	})
}
