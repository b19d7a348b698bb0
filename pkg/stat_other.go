//go:build !unix

package cache

import "os"

// uniqFromFileInfo degrades to size+mtime on platforms with no device/inode
// concept; mtime is already tracked separately by Entry, so this mostly
// protects against a same-mtime file swap changing size.
func uniqFromFileInfo(fi os.FileInfo) fileIdentity {
	return fileIdentity{ino: uint64(fi.Size())}
}
