package repository

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/progzone122/kff/internal/fsutil"
)

// initSourceRepo creates a local repository with one committed file.
func initSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "template.json"), []byte(`{"questions":[],"files":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("template.json"); err != nil {
		t.Fatal(err)
	}
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "kff", Email: "kff@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return dir
}

func TestGitCloner_Clone(t *testing.T) {
	// go-git serves local paths through the git binary's upload-pack.
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
	src := initSourceRepo(t)
	fs := osfs.New(t.TempDir())
	cl := &GitCloner{FS: fs}

	if err := cl.Clone(context.Background(), src, "templates/gtk2", io.Discard); err != nil {
		t.Fatalf("Clone error: %v", err)
	}

	data, err := fsutil.ReadFile(fs, "templates/gtk2/template.json")
	if err != nil {
		t.Fatalf("reading cloned file: %v", err)
	}
	if string(data) != `{"questions":[],"files":[]}` {
		t.Errorf("unexpected content: %s", data)
	}
	if ok, _ := fsutil.IsDir(fs, "templates/gtk2/.git"); !ok {
		t.Error(".git directory missing from clone")
	}
	if ok, _ := fsutil.Exists(fs, "templates/gtk2.tmp"); ok {
		t.Error("temporary clone directory left behind")
	}
}

func TestGitCloner_FailureLeavesNothing(t *testing.T) {
	fs := osfs.New(t.TempDir())
	cl := &GitCloner{FS: fs}

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	if err := cl.Clone(context.Background(), missing, "templates/gtk2", io.Discard); err == nil {
		t.Fatal("expected clone error")
	}
	for _, p := range []string{"templates/gtk2", "templates/gtk2.tmp"} {
		if ok, _ := fsutil.Exists(fs, p); ok {
			t.Errorf("%s left behind after failed clone", p)
		}
	}
}
