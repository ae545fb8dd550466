// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "metadata.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with the file name", func(t *testing.T) {
		t.Parallel()

		orig := errors.New("boom")
		err := FormatError(orig, "metadata.cue")
		if !errors.Is(err, orig) {
			t.Errorf("error should wrap original, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "metadata.cue: ") {
			t.Errorf("error should start with file name, got %q", err.Error())
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "empty", path: nil, want: ""},
		{name: "single", path: []string{"name"}, want: "name"},
		{name: "nested", path: []string{"ui", "preview_width"}, want: "ui.preview_width"},
		{name: "index", path: []string{"actions", "0"}, want: "actions[0]"},
		{name: "quoted label", path: []string{"attributes", `"db/user"`, "choice", "1"}, want: `attributes["db/user"].choice[1]`},
		{name: "bare non-identifier label", path: []string{"depends", "apt-get"}, want: `depends["apt-get"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "a.cue"); err != nil {
		t.Errorf("size at limit should pass, got %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "a.cue"); err == nil {
		t.Error("size over limit should fail")
	}
}
