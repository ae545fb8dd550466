// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cookdoc/cookdoc/internal/config"
	"github.com/cookdoc/cookdoc/internal/issue"
	"github.com/cookdoc/cookdoc/internal/render"
	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

type (
	// renderFlagValues holds the flags of `cookdoc render`.
	renderFlagValues struct {
		constraints bool
		template    string
		output      string
		stdout      bool
		preview     bool
		check       bool
		watch       bool
	}

	// renderRequest is a fully resolved render invocation: flags merged
	// over the configuration, paths made absolute.
	renderRequest struct {
		root         string
		constraints  bool
		templatePath string
		outputPath   string
		mode         renderMode
		previewStyle string
		previewWidth int
	}

	renderMode int
)

const (
	modeWrite renderMode = iota
	modeStdout
	modePreview
	modeCheck
)

func newRenderCommand(app *App) *cobra.Command {
	flags := &renderFlagValues{}

	cmd := &cobra.Command{
		Use:   "render [dir]",
		Short: "Render the README of a package",
		Long: `Render the README of the package rooted at dir (default ".").

The README is written to the configured output file (README.md by default)
unless --stdout, --preview or --check is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: reportErrors(app, func(cmd *cobra.Command, args []string) error {
			req, err := resolveRenderRequest(cmd, flags, configFromContext(cmd.Context()), packageRoot(args))
			if err != nil {
				return err
			}
			if flags.watch {
				return runRenderWatch(cmd.Context(), app, req)
			}
			return runRender(cmd.Context(), app, req)
		}),
	}

	cmd.Flags().BoolVar(&flags.constraints, "constraints", false, "show version constraints of platforms and dependencies")
	cmd.Flags().StringVarP(&flags.template, "template", "t", "", "custom README template (text/template)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "README path, relative to the package root")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print the README instead of writing it")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "print the README formatted for the terminal")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 when the README is out of date")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render whenever package files change")
	cmd.MarkFlagsMutuallyExclusive("stdout", "preview", "check")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")

	return cmd
}

func resolveRenderRequest(cmd *cobra.Command, flags *renderFlagValues, cfg *config.Config, root string) (renderRequest, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return renderRequest{}, fmt.Errorf("resolve package root: %w", err)
	}

	req := renderRequest{
		root:         absRoot,
		constraints:  cfg.Constraints,
		templatePath: cfg.Template,
		outputPath:   cfg.Output,
		previewStyle: cfg.UI.PreviewStyle,
		previewWidth: cfg.UI.PreviewWidth,
	}
	if cmd.Flags().Changed("constraints") {
		req.constraints = flags.constraints
	}
	if flags.template != "" {
		req.templatePath = flags.template
	}
	if flags.output != "" {
		req.outputPath = flags.output
	}
	if req.outputPath == "" {
		req.outputPath = config.DefaultOutput
	}
	if !filepath.IsAbs(req.outputPath) {
		req.outputPath = filepath.Join(absRoot, req.outputPath)
	}

	switch {
	case flags.stdout:
		req.mode = modeStdout
	case flags.preview:
		req.mode = modePreview
	case flags.check:
		req.mode = modeCheck
	default:
		req.mode = modeWrite
	}
	return req, nil
}

// renderContent builds the model and executes the template.
func renderContent(ctx context.Context, app *App, req renderRequest) (string, error) {
	m, err := app.buildModel(ctx, req.root, req.constraints)
	if err != nil {
		return "", err
	}

	content, err := executeTemplate(req.templatePath, m)
	if err == nil {
		return content, nil
	}
	return "", newServiceError(issue.NewErrorContext().
		WithOperation("render README").
		WithResource(templateName(req.templatePath)).
		WithSuggestion("Run 'cookdoc template' to see the built-in template and the available fields").
		Wrap(err).
		Build(), issue.TemplateErrorId)
}

func executeTemplate(path string, m *docmodel.Model) (string, error) {
	var (
		r   *render.Renderer
		err error
	)
	if path != "" {
		r, err = render.NewFromFile(path)
	} else {
		r, err = render.New()
	}
	if err != nil {
		return "", err
	}
	return r.RenderString(m)
}

func templateName(path string) string {
	if path == "" {
		return render.DefaultTemplateName
	}
	return path
}

// runRender performs one render in the requested mode.
func runRender(ctx context.Context, app *App, req renderRequest) error {
	content, err := renderContent(ctx, app, req)
	if err != nil {
		return err
	}

	switch req.mode {
	case modeStdout:
		_, err = fmt.Fprint(app.stdout, content)
		return err

	case modePreview:
		out, err := render.Preview(content, render.PreviewOptions{Style: req.previewStyle, Width: req.previewWidth})
		if err != nil {
			return fmt.Errorf("preview README: %w", err)
		}
		_, err = fmt.Fprint(app.stdout, out)
		return err

	case modeCheck:
		return checkReadme(app, req.outputPath, content)

	default:
		if err := render.WriteFile(req.outputPath, content); err != nil {
			return err
		}
		log.FromContext(ctx).Debug("README written", "path", req.outputPath, "bytes", len(content))
		fmt.Fprintf(app.stdout, "%s Wrote %s\n", SuccessStyle.Render("✓"), KeyStyle.Render(req.outputPath))
		return nil
	}
}

func checkReadme(app *App, path, content string) error {
	res, err := render.Check(path, content)
	if err != nil {
		return err
	}
	if !res.Stale {
		fmt.Fprintf(app.stdout, "%s %s is up to date\n", SuccessStyle.Render("✓"), KeyStyle.Render(path))
		return nil
	}

	fmt.Fprint(app.stdout, colorizeDiff(res.Diff))
	reason := "is out of date"
	if res.Missing {
		reason = "does not exist"
	}
	return &ExitError{
		Code: ExitCodeStale,
		Err:  newServiceError(fmt.Errorf("%s %s; run 'cookdoc render' to update it", path, reason), issue.ReadmeStaleId),
	}
}

func colorizeDiff(diff string) string {
	var sb strings.Builder
	for line := range strings.Lines(diff) {
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+"):
			sb.WriteString(diffAddStyle.Render(text))
		case strings.HasPrefix(text, "-"):
			sb.WriteString(diffRemoveStyle.Render(text))
		default:
			sb.WriteString(diffKeepStyle.Render(text))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
