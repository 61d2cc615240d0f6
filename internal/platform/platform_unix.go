//go:build unix

package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// The POSIX identifier aliases are probed from the kernel-facing struct
// layouts instead of hard-coded per GOOS/GOARCH.
func init() {
	table["dev_t"] = Alias{Bytes: int(unsafe.Sizeof(unix.Stat_t{}.Dev)), Signed: false}
	table["uid_t"] = Alias{Bytes: int(unsafe.Sizeof(unix.Stat_t{}.Uid)), Signed: false}
	table["gid_t"] = Alias{Bytes: int(unsafe.Sizeof(unix.Stat_t{}.Gid)), Signed: false}
	table["off_t"] = Alias{Bytes: int(unsafe.Sizeof(unix.Stat_t{}.Size)), Signed: true}
	table["pid_t"] = Alias{Bytes: int(unsafe.Sizeof(unix.Flock_t{}.Pid)), Signed: true}
	// POSIX fixes socklen_t as an unsigned 32-bit quantity.
	table["socklen_t"] = Alias{Bytes: 4, Signed: false}
}
