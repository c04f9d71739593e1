package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// OS returns a filesystem rooted at "/" so absolute host paths work unchanged.
func OS() billy.Filesystem {
	return osfs.New("/")
}

// Exists reports whether path exists. A missing path is (false, nil); any
// other stat failure is returned as an error.
func Exists(fs billy.Filesystem, path string) (bool, error) {
	_, err := fs.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}

// IsDir reports whether path exists and is a directory.
func IsDir(fs billy.Filesystem, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// ReadFile returns the full contents of path.
func ReadFile(fs billy.Filesystem, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// WriteFile replaces the contents of path, creating it with perm if needed.
func WriteFile(fs billy.Filesystem, path string, data []byte, perm os.FileMode) error {
	return util.WriteFile(fs, path, data, perm)
}

// RemoveAll removes path and everything below it. A missing path is not an error.
func RemoveAll(fs billy.Filesystem, path string) error {
	if err := util.RemoveAll(fs, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// CopyDir recursively copies the contents of src into dst, creating dst.
// File modes are preserved and symlinks are recreated rather than followed.
func CopyDir(fs billy.Filesystem, src, dst string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}

	if err := fs.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := fs.Join(src, entry.Name())
		dstPath := fs.Join(dst, entry.Name())

		switch {
		case entry.Mode()&os.ModeSymlink != 0:
			if err := copySymlink(fs, srcPath, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			if err := CopyDir(fs, srcPath, dstPath); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := copyFile(fs, srcPath, dstPath, entry.Mode().Perm()); err != nil {
				return err
			}
		}
		// Devices, sockets and pipes are skipped.
	}

	return nil
}

// copyFile copies a single file from src to dst with the given permissions.
func copyFile(fs billy.Filesystem, src, dst string, perm os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copySymlink(fs billy.Filesystem, src, dst string) error {
	target, err := fs.Readlink(src)
	if err != nil {
		return err
	}
	return fs.Symlink(target, dst)
}
