// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cookdoc/cookdoc/internal/config"
	"github.com/cookdoc/cookdoc/internal/issue"
)

// newConfigCommand creates the `cookdoc config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cookdoc configuration",
		Long: `Manage cookdoc configuration.

Configuration is stored in:
  - Linux: ~/.config/cookdoc/config.cue
  - macOS: ~/Library/Application Support/cookdoc/config.cue
  - Windows: %APPDATA%\cookdoc\config.cue

Every key can be overridden with a COOKDOC_ environment variable, for
example COOKDOC_OUTPUT or COOKDOC_UI_PREVIEW_STYLE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	loadOpts := func() config.LoadOptions {
		return config.LoadOptions{ConfigFilePath: rootFlags.configPath}
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: reportErrors(app, func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, loadOpts())
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, loadOpts())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, loadOpts())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: reportErrors(app, func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), loadOpts())
			if err != nil {
				return newServiceError(err, issue.ConfigLoadFailedId)
			}
			_, err = fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return err
		}),
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts config.LoadOptions) error {
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		return newServiceError(err, issue.ConfigLoadFailedId)
	}

	w := app.stdout
	value := func(v any) string { return SuccessStyle.Render(fmt.Sprint(v)) }

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if cfg.Path() != "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), cfg.Path())
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	template := SubtitleStyle.Render("(built-in)")
	if cfg.Template != "" {
		template = value(cfg.Template)
	}
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("constraints"), value(cfg.Constraints))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("template"), template)
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("output"), value(cfg.Output))
	fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("log_level"), value(cfg.LogLevel))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(w, "  preview_style: %s\n", value(cfg.UI.PreviewStyle))
	fmt.Fprintf(w, "  preview_width: %s\n", value(cfg.UI.PreviewWidth))

	return nil
}

func showConfigPath(app *App, opts config.LoadOptions) error {
	path, err := config.FilePath(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.stdout, path)
	return nil
}

func initConfig(app *App, opts config.LoadOptions) error {
	path, err := config.FilePath(opts)
	if err != nil {
		return err
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
