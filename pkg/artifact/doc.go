// SPDX-License-Identifier: MPL-2.0

// Package artifact parses the per-file artifacts of a cookbook: attribute
// declaration files, resources and definitions. Each file is a CUE document
// checked against an embedded schema; descriptions fall back to the
// comments written above a declaration or at the top of the file.
package artifact
