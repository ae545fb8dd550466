// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cookdoc/cookdoc/internal/watch"
	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

// runRenderWatch renders once, then again after every change to the
// package sources until the context is cancelled (Ctrl+C). Failed renders
// are reported and the watcher keeps running so the user can fix the file
// and save again.
func runRenderWatch(ctx context.Context, app *App, req renderRequest) error {
	logger := log.FromContext(ctx)

	patterns := watch.PackagePatterns(docmodel.DefaultLayout())
	if rel, ok := relativeTo(req.root, req.templatePath); ok {
		patterns = append(patterns, rel)
	}

	rerender := func(ctx context.Context) {
		if err := runRender(ctx, app, req); err != nil {
			fmt.Fprintf(app.stderr, "%s %s\n", WarningStyle.Render("!"), formatErrorForDisplay(err, false))
		}
	}

	fmt.Fprintf(app.stdout, "%s Watch mode: initial render of %s\n", KeyStyle.Render("→"), req.root)
	rerender(ctx)

	w, err := watch.New(watch.Config{
		Root:     req.root,
		Patterns: patterns,
		Logger:   logger,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stdout, "%s %d file(s) changed: %s\n",
				KeyStyle.Render("→"), len(changed), strings.Join(changed, ", "))
			rerender(ctx)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Watching for changes (Ctrl+C to stop)...\n", KeyStyle.Render("→"))
	return w.Run(ctx)
}

// relativeTo returns path relative to root in slash form when path lies
// inside root.
func relativeTo(root, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
