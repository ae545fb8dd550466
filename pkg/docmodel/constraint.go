// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cookdoc/cookdoc/pkg/metadata"
)

// DefaultConstraint is the open version range that is never displayed.
const DefaultConstraint = metadata.DefaultConstraint

// FormatConstraint renders subject with its version range in parentheses
// when show is set and the range is not DefaultConstraint. Otherwise it
// returns subject unchanged.
func FormatConstraint(subject, version string, show bool) string {
	if show && version != DefaultConstraint {
		return subject + " (" + version + ")"
	}
	return subject
}

func formatConstraints(cs []metadata.Constraint, show bool, subject func(string) string) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, FormatConstraint(subject(c.Subject), c.Version, show))
	}
	return out
}

// capitalize upper-cases the first letter of s and lower-cases the rest,
// so "ubuntu" and "UBUNTU" both display as "Ubuntu".
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func verbatim(s string) string { return s }
