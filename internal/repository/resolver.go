package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/progzone122/kff/internal/fsutil"
	"github.com/progzone122/kff/internal/progress"
)

// Options configures a Resolver.
type Options struct {
	TemplatesDir string           // cache directory holding one folder per template
	Registry     Registry         // index consulted for templates not in the cache
	Cloner       Cloner           // fetches remote templates; defaults to a GitCloner on FS
	FS           billy.Filesystem // defaults to the host filesystem
	Out          io.Writer        // status and clone progress; defaults to io.Discard
}

// Resolver finds templates and materializes them into the cache.
type Resolver struct {
	dir      string
	registry Registry
	cloner   Cloner
	fs       billy.Filesystem
	out      io.Writer
}

// NewResolver returns a Resolver for opts.
func NewResolver(opts Options) *Resolver {
	fs := opts.FS
	if fs == nil {
		fs = fsutil.OS()
	}
	cloner := opts.Cloner
	if cloner == nil {
		cloner = NewGitCloner(fs)
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Resolver{
		dir:      opts.TemplatesDir,
		registry: opts.Registry,
		cloner:   cloner,
		fs:       fs,
		out:      out,
	}
}

// Path returns the cache directory for a template name.
func (r *Resolver) Path(name string) string {
	return path.Join(r.dir, name)
}

// Resolve looks name up in the cache first and only then in the registry.
func (r *Resolver) Resolve(ctx context.Context, name string) (Reference, error) {
	if err := ValidateName(name); err != nil {
		return Reference{}, err
	}

	local, err := fsutil.IsDir(r.fs, r.Path(name))
	if err != nil {
		return Reference{}, fmt.Errorf("checking template cache: %w", err)
	}
	if local {
		return Reference{Name: name, Source: SourceLocal}, nil
	}

	if r.registry == nil {
		return Reference{}, fmt.Errorf("%w: %q (no registry configured)", ErrNotFound, name)
	}
	entries, err := r.registry.Fetch(ctx)
	if err != nil {
		if errors.Is(err, ErrRegistryUnavailable) {
			return Reference{}, err
		}
		return Reference{}, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	entry, ok := Lookup(entries, name)
	if !ok {
		return Reference{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return Reference{Name: name, Source: SourceRemote, URL: entry.URL}, nil
}

// Materialize makes ref available in the cache and returns its path. Local
// templates are returned untouched. Remote templates replace whatever the
// cache holds under that name.
func (r *Resolver) Materialize(ctx context.Context, ref Reference) (string, error) {
	if err := ValidateName(ref.Name); err != nil {
		return "", err
	}
	dest := r.Path(ref.Name)
	if ref.Source == SourceLocal {
		return dest, nil
	}

	if err := fsutil.RemoveAll(r.fs, dest); err != nil {
		return "", fmt.Errorf("removing cached %s: %w", ref.Name, err)
	}
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating template cache: %w", err)
	}

	fmt.Fprintf(r.out, "Cloning %s from %s\n", ref.Name, ref.URL)
	rep := progress.New(r.out)
	err := r.cloner.Clone(ctx, ref.URL, dest, rep.Writer())
	rep.Close()
	if err != nil {
		_ = fsutil.RemoveAll(r.fs, dest)
		return "", &FetchError{URL: ref.URL, Err: err}
	}
	return dest, nil
}

// Cached lists the template names present in the cache directory. A
// "<name>.tmp" directory is an in-progress clone of <name> and is skipped
// when <name> is also present.
func (r *Resolver) Cached() ([]string, error) {
	infos, err := r.fs.ReadDir(r.dir)
	if err != nil {
		if ok, _ := fsutil.Exists(r.fs, r.dir); !ok {
			return nil, nil
		}
		return nil, fmt.Errorf("reading template cache: %w", err)
	}
	dirs := make(map[string]bool, len(infos))
	for _, info := range infos {
		if info.IsDir() && ValidateName(info.Name()) == nil {
			dirs[info.Name()] = true
		}
	}
	var names []string
	for _, info := range infos {
		name := info.Name()
		if !dirs[name] {
			continue
		}
		if base, ok := strings.CutSuffix(name, tmpSuffix); ok && dirs[base] {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
