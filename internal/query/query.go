// SPDX-License-Identifier: MPL-2.0

// Package query evaluates expr-lang expressions against a documentation
// model. The environment is the model's evaluation context, so expressions
// use the same snake_case names as templates:
//
//	len(recipes) > 0
//	name + "@" + version
//	filter(attributes, .Default == nil)
package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cookdoc/cookdoc/pkg/docmodel"
)

// ErrInvalidQuery is wrapped by every Error.
var ErrInvalidQuery = errors.New("invalid query")

// Error reports an expression that failed to compile or run.
type Error struct {
	Expression string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("query %q: %v", e.Expression, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrInvalidQuery, e.Err}
}

// Query is an expression compiled against one model.
type Query struct {
	source  string
	program *vm.Program
	model   *docmodel.Model
}

// Compile type-checks expression against m's evaluation context.
func Compile(expression string, m *docmodel.Model) (*Query, error) {
	program, err := expr.Compile(expression, options(m)...)
	if err != nil {
		return nil, &Error{Expression: expression, Err: err}
	}
	return &Query{source: expression, program: program, model: m}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.source }

// Run evaluates the query.
func (q *Query) Run() (any, error) {
	out, err := expr.Run(q.program, env(q.model))
	if err != nil {
		return nil, &Error{Expression: q.source, Err: err}
	}
	return out, nil
}

// Eval compiles and runs expression against m.
func Eval(expression string, m *docmodel.Model) (any, error) {
	q, err := Compile(expression, m)
	if err != nil {
		return nil, err
	}
	return q.Run()
}

func options(m *docmodel.Model) []expr.Option {
	return []expr.Option{
		expr.Env(env(m)),
		expr.Function("fragment", func(params ...any) (any, error) {
			key, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("fragment: key must be a string, got %T", params[0])
			}
			text, _ := m.Fragment(key)
			return text, nil
		}, new(func(string) string)),
	}
}

func env(m *docmodel.Model) map[string]any {
	return m.Context()
}
