// SPDX-License-Identifier: MPL-2.0

// Package metadata reads a cookbook's metadata file into [Metadata].
//
// Two formats are understood, selected by file name:
//   - metadata.cue: validated against an embedded CUE schema (#Metadata)
//   - metadata.hcl: labeled blocks decoded with gohcl
//
// Both keep the declaration order of attributes, recipes and every
// constraint list, since documentation is rendered in that order.
package metadata
