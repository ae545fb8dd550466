// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cookdoc/cookdoc/internal/render"
)

func newTemplateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the built-in README template",
		Long: `Print the built-in README template. Save it to a file, edit it and pass
it to 'cookdoc render --template' or set it as 'template' in the
configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(app.stdout, render.DefaultTemplate())
			return err
		},
	}
}
