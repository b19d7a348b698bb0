//go:build unix

package cache

import (
	"os"
	"syscall"
)

// uniqFromFileInfo extracts the device+inode identifier §3 calls "uniq"
// from a stat result. On POSIX systems this is exact; see stat_other.go for
// the degraded fallback on platforms without syscall.Stat_t.
func uniqFromFileInfo(fi os.FileInfo) fileIdentity {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return fileIdentity{dev: uint64(st.Dev), ino: uint64(st.Ino)}
	}
	return fileIdentity{}
}
