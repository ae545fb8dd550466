// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"os"
	"syscall"
	"testing"
)

func TestRun_FsnotifyErrors(t *testing.T) {
	t.Parallel()

	// inotify reports failures as *os.SyscallError values.
	inotify := func(errno syscall.Errno) error { return os.NewSyscallError("inotify_add_watch", errno) }

	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{name: "watch limit reached", err: inotify(syscall.ENOSPC), fatal: true},
		{name: "process out of descriptors", err: inotify(syscall.EMFILE), fatal: true},
		{name: "system out of descriptors", err: inotify(syscall.ENFILE), fatal: true},
		{name: "recipes dir not readable", err: inotify(syscall.EACCES), fatal: false},
		{name: "doc dir removed mid-add", err: inotify(syscall.ENOENT), fatal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertRunHandlesError(t, tt.err, tt.fatal)
		})
	}
}
