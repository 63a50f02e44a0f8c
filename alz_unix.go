//go:build unix

package alzkit

import "os"

// symlinkOrWrite creates a real symbolic link on platforms that support
// one.
func symlinkOrWrite(target, destPath string) error {
	os.Remove(destPath)
	if err := os.Symlink(target, destPath); err != nil {
		return &CantCreateSymlinkError{Path: destPath, Err: err}
	}
	return nil
}
