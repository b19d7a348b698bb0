package cache

// stat.go is the platform-agnostic half of the PATH identity check (§3
// Entry "uniq"); stat_unix.go and stat_other.go supply uniqFromFileInfo,
// the half that actually differs per platform.
//
// © 2025 sslcache authors. MIT License.

import "os"

type fileInfo = os.FileInfo

func statImpl(path string) (fileInfo, error) {
	return os.Stat(path)
}
