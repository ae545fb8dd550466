// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// Win32 error codes that leave ReadDirectoryChangesW unusable.
const (
	// ERROR_TOO_MANY_OPEN_FILES (4): per-process handle limit exceeded.
	// Analogous to EMFILE on Unix.
	errnoTooManyOpenFiles = syscall.Errno(4)
	// ERROR_INVALID_HANDLE (6): the directory handle is no longer valid,
	// typically because the watched directory was deleted or unmounted.
	errnoInvalidHandle = syscall.Errno(6)
	// ERROR_NOT_ENOUGH_MEMORY (8): insufficient memory to allocate the
	// ReadDirectoryChangesW notification buffer.
	errnoNotEnoughMemory = syscall.Errno(8)

	// ERROR_ACCESS_DENIED (5): one directory cannot be read. Not fatal.
	errnoAccessDenied = syscall.Errno(5)
)

// isFatalFsnotifyError reports errors after which the package root can no
// longer be watched, for example when the root itself was deleted.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errnoTooManyOpenFiles) ||
		errors.Is(err, errnoInvalidHandle) ||
		errors.Is(err, errnoNotEnoughMemory)
}
