// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Result holds a successfully decoded CUE document.
type Result[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the user document unified with the schema definition.
	// Callers walk it for data a struct decode cannot keep, such as field
	// order or doc comments.
	Unified cue.Value
}

// Decode compiles schema, unifies data with the definition at def
// (e.g. "#Metadata"), validates the result and decodes it into T.
func Decode[T any](schema string, data []byte, def string, opts ...Option) (*Result[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, o.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: compile schema: %w", schemaValue.Err())
	}

	root := schemaValue.LookupPath(cue.ParsePath(def))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", def, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}

	return &Result[T]{Value: &out, Unified: unified}, nil
}

// DecodeFile reads path and passes its content to Decode, using path as the
// filename unless WithFilename overrides it.
func DecodeFile[T any](path, schema, def string, opts ...Option) (*Result[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	opts = append([]Option{WithFilename(path)}, opts...)
	return Decode[T](schema, data, def, opts...)
}
