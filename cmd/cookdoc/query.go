// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cookdoc/cookdoc/internal/issue"
	"github.com/cookdoc/cookdoc/internal/query"
)

func newQueryCommand(app *App) *cobra.Command {
	var constraints bool

	cmd := &cobra.Command{
		Use:   "query [dir] <expression>",
		Short: "Evaluate an expression against the documentation model",
		Long: `Evaluate an expr-lang expression against the documentation model of the
package rooted at dir (default "."). The expression sees the same names as
README templates: name, version, platforms, dependencies, attributes,
resources, definitions, recipes, fragments and so on. Strings are printed
as is; other results are printed as JSON.`,
		Example: `  cookdoc query 'len(recipes)'
  cookdoc query ./webapp 'map(attributes, .Path)'
  cookdoc query 'fragment("usage") != ""'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: reportErrors(app, func(cmd *cobra.Command, args []string) error {
			root, expression := ".", args[0]
			if len(args) == 2 {
				root, expression = args[0], args[1]
			}

			show := configFromContext(cmd.Context()).Constraints
			if cmd.Flags().Changed("constraints") {
				show = constraints
			}

			m, err := app.buildModel(cmd.Context(), root, show)
			if err != nil {
				return err
			}

			out, err := query.Eval(expression, m)
			if err != nil {
				return newServiceError(issue.WrapWithContext(err, "evaluate query", expression), issue.InvalidQueryId)
			}
			return printResult(app, out)
		}),
	}

	cmd.Flags().BoolVar(&constraints, "constraints", false, "include version constraints in formatted lists")

	return cmd
}

func printResult(app *App, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(app.stdout, s)
		return err
	}
	enc := json.NewEncoder(app.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
