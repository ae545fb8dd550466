// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cookdoc/cookdoc/internal/export"
)

func newModelCommand(app *App) *cobra.Command {
	var (
		format      string
		constraints bool
	)

	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:   "model [dir]",
		Short: "Print the documentation model of a package",
		Long: `Print the documentation model of the package rooted at dir (default ".")
as ` + strings.Join(names, ", ") + `. Constraint lists are formatted the way
the README shows them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: reportErrors(app, func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			show := configFromContext(cmd.Context()).Constraints
			if cmd.Flags().Changed("constraints") {
				show = constraints
			}

			m, err := app.buildModel(cmd.Context(), packageRoot(args), show)
			if err != nil {
				return err
			}
			return export.Encode(app.stdout, m.Snapshot(), f)
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "output format: "+strings.Join(names, ", "))
	cmd.Flags().BoolVar(&constraints, "constraints", false, "include version constraints in formatted lists")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
