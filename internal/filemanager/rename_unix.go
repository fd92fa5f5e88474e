//go:build !windows

package filemanager

import "os"

// atomicRename replaces dst with src; rename(2) is atomic on the same filesystem
func atomicRename(src, dst string) error {
	return os.Rename(src, dst)
}
