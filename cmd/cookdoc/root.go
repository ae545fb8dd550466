// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cookdoc/cookdoc/internal/config"
	"github.com/cookdoc/cookdoc/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	configPath string
	verbose    bool
	logLevel   string
}

// NewRootCommand creates the cookdoc command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "cookdoc",
		Short: "Generate README documentation for cookbook packages",
		Long: TitleStyle.Render("cookdoc") + SubtitleStyle.Render(" - README generator for cookbook packages") + `

cookdoc reads a package's metadata file together with its attribute,
resource, definition and recipe files and the Markdown fragments under
doc/, and renders them into a README.

` + SubtitleStyle.Render("Examples:") + `
  cookdoc render                 Write README.md for the package in .
  cookdoc render --check         Fail when README.md is out of date
  cookdoc render --watch         Re-render on every change
  cookdoc model --format yaml    Print the documentation model
  cookdoc query 'len(recipes)'   Evaluate an expression against the model`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initRootContext(cmd, app, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/cookdoc/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newRenderCommand(app),
		newModelCommand(app),
		newQueryCommand(app),
		newTemplateCommand(app),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootContext loads the configuration, creates the logger and stores
// both in the context of the executing command. A configuration that fails
// to load is reported and replaced by the defaults.
func initRootContext(cmd *cobra.Command, app *App, flags *rootFlagValues) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		cfg = config.DefaultConfig()
	}

	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if flags.verbose {
		level = "debug"
	}
	logger, err := newLogger(app.stderr, level)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "path", cfg.Path(), "level", level)

	ctx = contextWithConfig(ctx, cfg)
	ctx = log.WithContext(ctx, logger)
	cmd.SetContext(ctx)
	return nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  lvl,
	}), nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// reportErrors wraps a RunE handler so that the issue catalog entry of a
// failing ServiceError is printed before fang reports the error itself.
func reportErrors(app *App, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			renderServiceError(app.stderr, err)
		}
		return err
	}
}
