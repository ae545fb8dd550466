// SPDX-License-Identifier: MPL-2.0

// Package docmodel builds the read-only documentation model of a cookbook.
//
// Build reads the package's metadata file, then collects attributes,
// resources, definitions, recipes and documentation fragments from the
// conventional subdirectories of the package root, in that order. The
// resulting Model is immutable: every accessor returns a copy, and the
// constraint accessors (platforms, dependencies and so on) format their
// entries afresh on each call.
//
// Optional directories that do not exist produce empty collections. A
// missing or malformed metadata file fails the build with a
// *MetadataLoadError, and a malformed artifact file fails it with the
// *artifact.ParseError of the first offending file.
package docmodel
