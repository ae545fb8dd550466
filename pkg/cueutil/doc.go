// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE plumbing shared by the metadata reader,
// the artifact parsers and the configuration loader.
//
// Every CUE document cookdoc reads goes through the same flow:
//
//  1. Compile the embedded schema
//  2. Compile the user file and unify it with a schema definition
//  3. Validate, then decode into a Go struct
//
// # Usage
//
//	//go:embed metadata_schema.cue
//	var schema string
//
//	res, err := cueutil.Decode[fileMetadata](schema, data, "#Metadata",
//	    cueutil.WithFilename(path),
//	)
//	if err != nil {
//	    return nil, err // error carries "<file>: <cue path>: <message>"
//	}
//
// Go maps lose the declaration order of CUE struct fields, so callers that
// need order walk [Result.Unified] with [Fields] instead of decoding maps.
package cueutil
