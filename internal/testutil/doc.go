// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Most helpers build package trees on disk: WriteTree writes a set of files
// below a root and NewPackage does the same in a fresh temporary directory.
package testutil
