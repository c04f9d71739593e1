package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/progzone122/kff/internal/fsutil"
	"github.com/progzone122/kff/internal/manifest"
	"github.com/progzone122/kff/internal/prompt"
	"github.com/progzone122/kff/internal/repository"
	"github.com/progzone122/kff/internal/substitute"
)

// AppNameQuestion is the question whose answer names the output folder.
const AppNameQuestion = "app_name"

// ErrInvalidName is returned when the output folder name is unusable.
var ErrInvalidName = errors.New("invalid output name")

// Resolver locates a template and makes it available locally.
type Resolver interface {
	Resolve(ctx context.Context, name string) (repository.Reference, error)
	Materialize(ctx context.Context, ref repository.Reference) (string, error)
}

// Options configures a Generator.
type Options struct {
	Resolver   Resolver
	FS         billy.Filesystem // defaults to the host filesystem
	Asker      prompt.Asker
	Out        io.Writer // status lines; defaults to io.Discard
	Warn       io.Writer // answer and substitution warnings; defaults to Out
	ScratchDir string    // per-template working copies live here
	OutputDir  string    // generated projects are written here
	Version    string    // running kff version, checked against "requires"
}

// Generator performs template generation runs.
type Generator struct {
	opts Options
}

// Result describes a finished run.
type Result struct {
	Template   string
	Source     repository.Source
	OutputPath string
	Answers    *prompt.Answers
}

// New returns a Generator for opts.
func New(opts Options) *Generator {
	if opts.FS == nil {
		opts.FS = fsutil.OS()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Warn == nil {
		opts.Warn = opts.Out
	}
	return &Generator{opts: opts}
}

// Run generates a project from the template called name. Any failure stops
// the run. The scratch copy is left in place for inspection.
func (g *Generator) Run(ctx context.Context, name string) (*Result, error) {
	fs := g.opts.FS

	ref, err := g.opts.Resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolving template %q: %w", name, err)
	}
	fmt.Fprintf(g.opts.Out, "Using %s template %q\n", ref.Source, ref.Name)

	cachePath, err := g.opts.Resolver.Materialize(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetching template %q: %w", name, err)
	}

	scratch := path.Join(g.opts.ScratchDir, ref.Name)
	if err := fsutil.RemoveAll(fs, scratch); err != nil {
		return nil, fmt.Errorf("clearing scratch directory: %w", err)
	}
	if err := fsutil.CopyDir(fs, cachePath, scratch); err != nil {
		return nil, fmt.Errorf("copying template to scratch directory: %w", err)
	}

	desc, err := manifest.Parse(fs, path.Join(scratch, manifest.FileName))
	if err != nil {
		return nil, err
	}
	if err := desc.CheckRequires(g.opts.Version); err != nil {
		return nil, err
	}

	answers, err := prompt.Collect(desc.Questions, g.opts.Asker, g.opts.Warn)
	if err != nil {
		return nil, fmt.Errorf("collecting answers: %w", err)
	}

	sub, err := substitute.Apply(fs, desc, answers, scratch)
	if err != nil {
		return nil, fmt.Errorf("applying substitutions: %w", err)
	}
	for _, s := range sub.Skipped {
		fmt.Fprintf(g.opts.Warn, "warning: no answer for %s, left unchanged\n", s)
	}

	for _, meta := range []string{manifest.FileName, ".git"} {
		if err := fsutil.RemoveAll(fs, path.Join(scratch, meta)); err != nil {
			return nil, fmt.Errorf("removing %s from generated project: %w", meta, err)
		}
	}

	outName, err := OutputName(ref.Name, answers)
	if err != nil {
		return nil, err
	}
	outPath := path.Join(g.opts.OutputDir, outName)
	if err := fsutil.RemoveAll(fs, outPath); err != nil {
		return nil, fmt.Errorf("removing existing %s: %w", outPath, err)
	}
	if err := fsutil.CopyDir(fs, scratch, outPath); err != nil {
		return nil, fmt.Errorf("writing generated project: %w", err)
	}

	fmt.Fprintf(g.opts.Out, "Generated %s (%d files rewritten, %d replacements)\n",
		outPath, len(sub.Files), sub.Replacements)

	return &Result{
		Template:   ref.Name,
		Source:     ref.Source,
		OutputPath: outPath,
		Answers:    answers,
	}, nil
}

// OutputName returns the app_name answer when it is set and non-empty and
// the template name otherwise. The name must be a single path component.
func OutputName(template string, answers *prompt.Answers) (string, error) {
	name := template
	if v, ok := answers.Get(AppNameQuestion); ok && v != "" {
		name = v
	}
	if err := repository.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}
