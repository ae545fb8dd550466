// SPDX-License-Identifier: MPL-2.0

package render

import (
	"github.com/charmbracelet/glamour"
)

// PreviewOptions configures Preview.
type PreviewOptions struct {
	// Style is a glamour standard style name; "" or "auto" detects the
	// terminal background.
	Style string
	// Width is the word wrap width (0 for no wrap).
	Width int
}

// Preview renders Markdown for display in a terminal.
func Preview(markdown string, opts PreviewOptions) (string, error) {
	var rendererOpts []glamour.TermRendererOption
	if opts.Style == "" || opts.Style == "auto" {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	}

	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", err
	}

	return renderer.Render(markdown)
}
