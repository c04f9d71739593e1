package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeExecutable adds execute permission wherever read permission is set,
// like "chmod +x" under a 022 umask. Shell scripts fetched through git may
// arrive without the bit.
func MakeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	perm := info.Mode().Perm()
	perm |= (perm & 0o444) >> 2
	perm |= 0o100
	return Chmod(path, perm)
}
