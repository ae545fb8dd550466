// SPDX-License-Identifier: MPL-2.0

package docmodel

import "testing"

func TestFormatConstraint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		subject string
		version string
		show    bool
		want    string
	}{
		{subject: "foo", version: ">= 0.0.0", show: true, want: "foo"},
		{subject: "foo", version: "~> 1.2", show: true, want: "foo (~> 1.2)"},
		{subject: "foo", version: "~> 1.2", show: false, want: "foo"},
		{subject: "foo", version: ">= 0.0.0", show: false, want: "foo"},
		{subject: "foo", version: "", show: true, want: "foo ()"},
	}

	for _, tt := range tests {
		if got := FormatConstraint(tt.subject, tt.version, tt.show); got != tt.want {
			t.Errorf("FormatConstraint(%q, %q, %v) = %q, want %q", tt.subject, tt.version, tt.show, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ubuntu":   "Ubuntu",
		"UBUNTU":   "Ubuntu",
		"mac_os_x": "Mac_os_x",
		"":         "",
		"é":        "É",
	}

	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
