package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

func writeTestFile(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	if err := WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestExistsAndIsDir(t *testing.T) {
	fs := memfs.New()
	writeTestFile(t, fs, "/a/file.txt", "x")

	tests := []struct {
		path   string
		exists bool
		isDir  bool
	}{
		{"/a", true, true},
		{"/a/file.txt", true, false},
		{"/missing", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			exists, err := Exists(fs, tt.path)
			if err != nil {
				t.Fatalf("Exists error: %v", err)
			}
			if exists != tt.exists {
				t.Errorf("Exists(%s) = %v, want %v", tt.path, exists, tt.exists)
			}
			isDir, err := IsDir(fs, tt.path)
			if err != nil {
				t.Fatalf("IsDir error: %v", err)
			}
			if isDir != tt.isDir {
				t.Errorf("IsDir(%s) = %v, want %v", tt.path, isDir, tt.isDir)
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	fs := memfs.New()
	writeTestFile(t, fs, "/f.txt", "first")
	writeTestFile(t, fs, "/f.txt", "second")

	data, err := ReadFile(fs, "/f.txt")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	if _, err := ReadFile(fs, "/nope.txt"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRemoveAll(t *testing.T) {
	fs := memfs.New()
	writeTestFile(t, fs, "/tree/a/b.txt", "b")
	writeTestFile(t, fs, "/tree/c.txt", "c")

	if err := RemoveAll(fs, "/tree"); err != nil {
		t.Fatalf("RemoveAll error: %v", err)
	}
	if exists, _ := Exists(fs, "/tree"); exists {
		t.Error("tree should be gone")
	}
	if err := RemoveAll(fs, "/tree"); err != nil {
		t.Errorf("RemoveAll on missing path should succeed, got %v", err)
	}
}

func TestCopyDir(t *testing.T) {
	fs := memfs.New()
	writeTestFile(t, fs, "/src/README.md", "readme")
	writeTestFile(t, fs, "/src/src/main.c", "int main() {}")
	writeTestFile(t, fs, "/src/.git/HEAD", "ref: refs/heads/main")

	if err := CopyDir(fs, "/src", "/dst"); err != nil {
		t.Fatalf("CopyDir error: %v", err)
	}

	for path, want := range map[string]string{
		"/dst/README.md":  "readme",
		"/dst/src/main.c": "int main() {}",
		"/dst/.git/HEAD":  "ref: refs/heads/main",
	} {
		data, err := ReadFile(fs, path)
		if err != nil {
			t.Errorf("reading %s: %v", path, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", path, data, want)
		}
	}
}

func TestCopyDir_PreservesModeAndSymlinks(t *testing.T) {
	root := t.TempDir()
	fs := osfs.New(root)

	if err := WriteFile(fs, "src/build.sh", []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := fs.Symlink("build.sh", "src/run.sh"); err != nil {
		t.Fatal(err)
	}

	if err := CopyDir(fs, "src", "dst"); err != nil {
		t.Fatalf("CopyDir error: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "dst", "build.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("build.sh lost its executable bit: %o", info.Mode().Perm())
	}

	target, err := os.Readlink(filepath.Join(root, "dst", "run.sh"))
	if err != nil {
		t.Fatalf("run.sh should be a symlink: %v", err)
	}
	if target != "build.sh" {
		t.Errorf("symlink target = %q, want build.sh", target)
	}
}

func TestCopyDir_SourceNotDirectory(t *testing.T) {
	fs := memfs.New()
	writeTestFile(t, fs, "/file.txt", "x")
	if err := CopyDir(fs, "/file.txt", "/dst"); err == nil {
		t.Error("expected error when copying a file as a directory")
	}
}
