package installer

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractTarGz unpacks a gzip-compressed tar stream into destDir. Entries
// that would land outside destDir are rejected. It returns the number of
// regular files written. Entries below an extracted symlink are rejected so
// nothing is written through a link.
func ExtractTarGz(r io.Reader, destDir string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", destDir, err)
	}

	files := 0
	links := make(map[string]bool)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return files, fmt.Errorf("reading tar entry: %w", err)
		}

		target, err := entryPath(destDir, hdr.Name)
		if err != nil {
			return files, err
		}
		rel := filepath.Clean(filepath.FromSlash(hdr.Name))
		if parent := linkedParent(links, rel); parent != "" {
			return files, fmt.Errorf("archive entry %s is below symlink %s", hdr.Name, filepath.ToSlash(parent))
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()|0o700); err != nil {
				return files, fmt.Errorf("creating directory %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, hdr.FileInfo().Mode().Perm()); err != nil {
				return files, err
			}
			files++
		case tar.TypeSymlink:
			if filepath.IsAbs(hdr.Linkname) {
				return files, fmt.Errorf("archive entry %s links to absolute path %s", hdr.Name, hdr.Linkname)
			}
			if _, err := entryPath(destDir, filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)); err != nil {
				return files, err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return files, fmt.Errorf("creating directory for %s: %w", hdr.Name, err)
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return files, fmt.Errorf("creating symlink %s: %w", hdr.Name, err)
			}
			links[rel] = true
		}
		// Hard links, devices and fifos are skipped.
	}
	return files, nil
}

// entryPath maps an archive entry name to a path under destDir.
func entryPath(destDir, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %s escapes the destination directory", name)
	}
	return filepath.Join(destDir, clean), nil
}

// linkedParent returns the first ancestor of rel that was extracted as a
// symlink, or "".
func linkedParent(links map[string]bool, rel string) string {
	for dir := filepath.Dir(rel); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if links[dir] {
			return dir
		}
	}
	return ""
}

func writeEntry(r io.Reader, target string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}
	// Replace a symlink at target instead of writing through it.
	if info, err := os.Lstat(target); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("replacing symlink %s: %w", target, err)
		}
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", target, err)
	}
	return out.Close()
}
