// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cookdoc/cookdoc/internal/config"
	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

type (
	configContextKey struct{}

	// App wires CLI services and shared dependencies. It is the composition
	// root of the CLI layer: every command handler receives an App and reaches
	// configuration and output streams through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// buildModel builds the model of the package at root with the logger of ctx.
func (a *App) buildModel(ctx context.Context, root string, constraints bool) (*docmodel.Model, error) {
	m, err := docmodel.Build(ctx, root,
		docmodel.WithConstraints(constraints),
		docmodel.WithLogger(log.FromContext(ctx)))
	if err != nil {
		return nil, wrapBuildError(err, root)
	}
	return m, nil
}

func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// configFromContext returns the configuration loaded by the root command,
// or the defaults when none was stored.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configContextKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// packageRoot returns the package directory argument, defaulting to ".".
func packageRoot(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}
