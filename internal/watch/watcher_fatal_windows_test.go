// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"os"
	"testing"
)

func TestRun_FsnotifyErrors(t *testing.T) {
	t.Parallel()

	readChanges := func(errno error) error { return os.NewSyscallError("ReadDirectoryChanges", errno) }

	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{name: "handle limit reached", err: readChanges(errnoTooManyOpenFiles), fatal: true},
		{name: "package root deleted", err: readChanges(errnoInvalidHandle), fatal: true},
		{name: "notification buffer allocation failed", err: readChanges(errnoNotEnoughMemory), fatal: true},
		{name: "recipes dir not readable", err: readChanges(errnoAccessDenied), fatal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertRunHandlesError(t, tt.err, tt.fatal)
		})
	}
}
