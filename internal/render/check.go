// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// CheckResult compares a README on disk with freshly rendered content.
type CheckResult struct {
	// Stale is true when the file is missing or differs.
	Stale bool
	// Missing is true when the file does not exist.
	Missing bool
	// Diff is a line diff from the file to the rendered content, with
	// "-", "+" and " " prefixes. Empty when the file is up to date.
	Diff string
}

// Check compares the file at path with want.
func Check(path, want string) (CheckResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CheckResult{Stale: true, Missing: true, Diff: LineDiff("", want)}, nil
	}
	if err != nil {
		return CheckResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	have := string(data)
	if have == want {
		return CheckResult{}, nil
	}
	return CheckResult{Stale: true, Diff: LineDiff(have, want)}, nil
}

// LineDiff returns a line-by-line diff turning from into to.
func LineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
