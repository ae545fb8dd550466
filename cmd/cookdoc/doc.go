// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cookdoc CLI.
//
// The root command loads the user configuration and the logger once per
// invocation and stores both in the command context. Subcommands build a
// documentation model of the package directory given as argument and
// render, export or query it.
package cmd
