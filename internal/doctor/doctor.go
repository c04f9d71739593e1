package doctor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/progzone122/kff/internal/fsutil"
	"github.com/progzone122/kff/internal/manifest"
	"github.com/progzone122/kff/internal/repository"
)

// Status is the outcome of one check.
type Status int

const (
	StatusOK Status = iota
	StatusInfo
	StatusWarn
	StatusMiss
	StatusFail
)

// Tag returns the fixed-width label printed before a check message.
func (s Status) Tag() string {
	switch s {
	case StatusOK:
		return "[ OK ]"
	case StatusInfo:
		return "[INFO]"
	case StatusWarn:
		return "[WARN]"
	case StatusMiss:
		return "[MISS]"
	default:
		return "[FAIL]"
	}
}

// Check is one diagnostic line. Detail lines are printed indented below it.
type Check struct {
	Status  Status
	Message string
	Detail  []string
}

// Section groups related checks under a title.
type Section struct {
	Title  string
	Checks []Check
}

func (s *Section) add(status Status, format string, args ...any) *Check {
	s.Checks = append(s.Checks, Check{Status: status, Message: fmt.Sprintf(format, args...)})
	return &s.Checks[len(s.Checks)-1]
}

// Report is the result of a doctor run.
type Report struct {
	Sections []Section
}

// Failed reports whether any check missed or failed.
func (r *Report) Failed() bool {
	for _, s := range r.Sections {
		for _, c := range s.Checks {
			if c.Status >= StatusMiss {
				return true
			}
		}
	}
	return false
}

// MesonCrossFile is the cross-compilation file generated inside a KSDK.
const MesonCrossFile = "meson-crosscompile.txt"

// DefaultBinaries are the tools a template build needs on PATH.
var DefaultBinaries = []string{"git", "meson", "ninja"}

// Options selects what Run checks.
type Options struct {
	KSDK          string
	TemplatesDir  string
	Binaries      []string
	LookPath      func(string) (string, error) // defaults to exec.LookPath
	Registry      repository.Registry          // checked when CheckRegistry is set
	CheckRegistry bool
	ManifestPath  string // validated when non-empty
}

// Run performs the selected checks.
func Run(ctx context.Context, opts Options) *Report {
	binaries := opts.Binaries
	if binaries == nil {
		binaries = DefaultBinaries
	}
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	r := &Report{}
	r.Sections = append(r.Sections,
		CheckKSDK(opts.KSDK),
		CheckTemplates(opts.TemplatesDir),
		CheckBinaries(binaries, lookPath),
	)
	if opts.CheckRegistry && opts.Registry != nil {
		r.Sections = append(r.Sections, CheckRegistry(ctx, opts.Registry))
	}
	if opts.ManifestPath != "" {
		r.Sections = append(r.Sections, CheckManifest(opts.ManifestPath))
	}
	return r
}

// CheckKSDK reports the KSDK location and the head of its meson cross file.
func CheckKSDK(ksdk string) Section {
	s := Section{Title: "KSDK check:"}
	if ksdk == "" {
		s.add(StatusMiss, "KSDK is not set")
		return s
	}
	info, err := os.Stat(ksdk)
	if err != nil || !info.IsDir() {
		s.add(StatusFail, "KSDK=%s is not a directory", ksdk)
		return s
	}
	s.add(StatusOK, "KSDK=%s", ksdk)

	crossFile := filepath.Join(ksdk, MesonCrossFile)
	lines, err := ReadFirstLines(crossFile, 5)
	if err != nil {
		s.add(StatusFail, "%s: %v", MesonCrossFile, err)
		return s
	}
	c := s.add(StatusOK, "%s:", MesonCrossFile)
	c.Detail = append(lines, "...")
	return s
}

// ReadFirstLines returns up to n lines of path. An empty file is an error.
func ReadFirstLines(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for len(lines) < n && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s is empty or damaged", path)
	}
	return lines, nil
}

// CheckTemplates reports the template cache directory and what it holds.
func CheckTemplates(dir string) Section {
	s := Section{Title: "Templates check:"}
	if dir == "" {
		s.add(StatusWarn, "no templates directory configured")
		return s
	}
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		s.add(StatusInfo, "%s does not exist yet (created on first remote generate)", dir)
		return s
	}
	if err != nil || !info.IsDir() {
		s.add(StatusFail, "%s is not a directory", dir)
		return s
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		s.add(StatusFail, "resolving %s: %v", dir, err)
		return s
	}
	resolver := repository.NewResolver(repository.Options{TemplatesDir: abs})
	names, err := resolver.Cached()
	if err != nil {
		s.add(StatusFail, "reading %s: %v", dir, err)
		return s
	}
	s.add(StatusOK, "%s (%d cached template(s))", dir, len(names))
	return s
}

// CheckBinaries reports whether each tool is on PATH.
func CheckBinaries(names []string, lookPath func(string) (string, error)) Section {
	s := Section{Title: "Toolchain check:"}
	for _, name := range names {
		path, err := lookPath(name)
		if err != nil {
			s.add(StatusMiss, "%s not found", name)
			continue
		}
		s.add(StatusOK, "%s found at %s", name, path)
	}
	return s
}

// CheckRegistry fetches the registry index.
func CheckRegistry(ctx context.Context, reg repository.Registry) Section {
	s := Section{Title: "Registry check:"}
	entries, err := reg.Fetch(ctx)
	if err != nil {
		s.add(StatusFail, "%v", err)
		return s
	}
	s.add(StatusOK, "registry reachable (%d template(s))", len(entries))
	return s
}

// CheckManifest validates a template manifest file against the schema.
func CheckManifest(path string) Section {
	s := Section{Title: "Manifest validation: " + path}

	abs, err := filepath.Abs(path)
	if err != nil {
		s.add(StatusFail, "%v", err)
		return s
	}
	result, err := manifest.ValidateFile(fsutil.OS(), abs)
	if err != nil {
		s.add(StatusFail, "%v", err)
		return s
	}
	if !result.Valid {
		c := s.add(StatusFail, "%d validation issue(s):", len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Path != "" {
				c.Detail = append(c.Detail, fmt.Sprintf("- %s: %s", issue.Path, issue.Message))
			} else {
				c.Detail = append(c.Detail, "- "+issue.Message)
			}
		}
		return s
	}

	d, err := manifest.Parse(fsutil.OS(), abs)
	if err != nil {
		s.add(StatusFail, "%v", err)
		return s
	}
	s.add(StatusOK, "valid manifest: %d question(s), %d file(s)", len(d.Questions), len(d.Files))
	return s
}
