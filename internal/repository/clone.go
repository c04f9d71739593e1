package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/progzone122/kff/internal/fsutil"
)

// tmpSuffix is appended to the destination while a clone is in progress.
const tmpSuffix = ".tmp"

// Cloner copies a remote repository into dest.
type Cloner interface {
	Clone(ctx context.Context, url, dest string, progress io.Writer) error
}

// GitCloner clones with go-git into a billy filesystem, submodules included.
type GitCloner struct {
	FS    billy.Filesystem
	Depth int // 0 fetches full history
}

// NewGitCloner returns a shallow cloner writing to fs.
func NewGitCloner(fs billy.Filesystem) *GitCloner {
	return &GitCloner{FS: fs, Depth: 1}
}

// Clone writes to dest+".tmp" first and renames it to dest on success. On
// failure the temporary directory is removed and dest is left untouched.
func (c *GitCloner) Clone(ctx context.Context, url, dest string, progress io.Writer) error {
	tmp := dest + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	if err := fsutil.RemoveAll(c.FS, tmp); err != nil {
		return fmt.Errorf("removing stale %s: %w", tmp, err)
	}
	if err := c.FS.MkdirAll(tmp, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	if err := c.cloneInto(ctx, url, tmp, progress); err != nil {
		_ = fsutil.RemoveAll(c.FS, tmp)
		return err
	}

	if err := fsutil.RemoveAll(c.FS, dest); err != nil {
		_ = fsutil.RemoveAll(c.FS, tmp)
		return fmt.Errorf("removing existing %s: %w", dest, err)
	}
	if err := c.FS.Rename(tmp, dest); err != nil {
		_ = fsutil.RemoveAll(c.FS, tmp)
		return fmt.Errorf("finalizing clone: %w", err)
	}
	return nil
}

func (c *GitCloner) cloneInto(ctx context.Context, url, dir string, progress io.Writer) error {
	worktree, err := c.FS.Chroot(dir)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dir, err)
	}
	dotGit, err := worktree.Chroot(git.GitDirName)
	if err != nil {
		return fmt.Errorf("opening %s/%s: %w", dir, git.GitDirName, err)
	}
	storer := filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault())

	_, err = git.CloneContext(ctx, storer, worktree, &git.CloneOptions{
		URL:               url,
		Depth:             c.Depth,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
		Progress:          progress,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}
