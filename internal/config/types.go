// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// PreviewStyleAuto picks a dark or light preview from the terminal background.
	PreviewStyleAuto = "auto"

	// DefaultOutput is the README file written by `cookdoc render`.
	DefaultOutput = "README.md"
	// DefaultLogLevel is the log level used without --log-level or configuration.
	DefaultLogLevel = "info"
	// DefaultPreviewWidth is the word-wrap width of `cookdoc render --preview`.
	DefaultPreviewWidth = 80
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config holds the application configuration.
	Config struct {
		// Constraints shows version ranges next to platforms and dependencies.
		Constraints bool `json:"constraints" mapstructure:"constraints"`
		// Template is a custom README template; empty uses the built-in one.
		Template string `json:"template" mapstructure:"template"`
		// Output is the README path, relative to the cookbook root.
		Output string `json:"output" mapstructure:"output" validate:"required"`
		// LogLevel is one of debug, info, warn or error.
		LogLevel string `json:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// path is the file the configuration was read from, empty for defaults.
		path string
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// PreviewStyle is a glamour style name used by --preview.
		PreviewStyle string `json:"preview_style" mapstructure:"preview_style" validate:"oneof=auto dark light notty ascii dracula pink tokyo-night"`
		// PreviewWidth is the word-wrap width used by --preview.
		PreviewWidth int `json:"preview_width" mapstructure:"preview_width" validate:"gte=20,lte=400"`
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// one error per offending field.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Constraints: false,
		Template:    "",
		Output:      DefaultOutput,
		LogLevel:    DefaultLogLevel,
		UI: UIConfig{
			PreviewStyle: PreviewStyleAuto,
			PreviewWidth: DefaultPreviewWidth,
		},
	}
}

// Path returns the file the configuration was read from, or "" when only
// defaults and environment variables apply.
func (c *Config) Path() string {
	return c.path
}

// Validate checks the configuration against its validation tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fieldErrs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, fmt.Errorf("%s: value %v fails %q", configKey(fe.Namespace()), fe.Value(), fe.Tag()))
	}
	return &InvalidConfigError{FieldErrors: fieldErrs}
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
