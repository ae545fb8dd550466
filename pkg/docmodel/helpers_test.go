// SPDX-License-Identifier: MPL-2.0

package docmodel

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cookdoc/cookdoc/internal/testutil"
)

const fixtureMetadata = `
name:             "webapp"
version:          "1.4.0"
description:      "Installs and configures the web tier"
maintainer:       "Ops Team"
maintainer_email: "ops@example.com"
license:          "Apache-2.0"

attributes: {
	"db/user": {
		description: "Database user"
		default:     "app"
	}
}

supports: {
	ubuntu: ">= 22.04"
	debian: ""
}

depends: {
	nginx: "~> 2.1"
	apt:   ">= 0.0.0"
}
`

type countingScanner struct {
	calls map[string]int
}

func newCountingScanner() *countingScanner {
	return &countingScanner{calls: make(map[string]int)}
}

func (c *countingScanner) Scan(dir, pattern string) ([]string, error) {
	c.calls[filepath.Base(dir)]++
	return GlobScanner{}.Scan(dir, pattern)
}

// fixturePackage returns a package with one artifact of every kind.
func fixturePackage(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"metadata.cue":           fixtureMetadata,
		"attributes/default.cue": "\"app/port\": default: 8080\n",
		"resources/vhost.cue":    "// Manages a virtual host.\n\nactions: [\"create\"]\n",
		"definitions/conf.cue":   "description: \"Renders a config file\"\n",
		"recipes/default.cue":    "",
		"recipes/_common.cue":    "",
		"recipes/tls.cue":        "",
		"doc/intro.md":           "Welcome.\n",
		"doc/usage.md":           "Run it.\n",
	})
	return root
}

// skipIfPermissionsIgnored skips tests that rely on permission bits, which
// root and Windows do not honor.
func skipIfPermissionsIgnored(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root bypasses permission checks")
	}
}
