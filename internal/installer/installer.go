package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/progzone122/kff/internal/fsutil"
	"github.com/progzone122/kff/internal/repository"
)

// Release represents a GitHub release.
type Release struct {
	TagName   string    `json:"tag_name"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Runner executes a command in dir, streaming its output to out.
type Runner func(ctx context.Context, dir string, out io.Writer, name string, args ...string) error

// Installer downloads toolchains and builds SDKs.
type Installer struct {
	repo       string // owner/name of the toolchain release repository
	apiBase    string
	httpClient *http.Client
	out        io.Writer
	cloner     repository.Cloner
	run        Runner
}

// Option configures an Installer.
type Option func(*Installer)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(i *Installer) {
		i.httpClient = c
	}
}

// WithAPIBase overrides the GitHub API endpoint.
func WithAPIBase(base string) Option {
	return func(i *Installer) {
		i.apiBase = strings.TrimRight(base, "/")
	}
}

// WithOutput sets where status lines and progress are written.
func WithOutput(w io.Writer) Option {
	return func(i *Installer) {
		i.out = w
	}
}

// WithCloner replaces the git cloner used for the SDK.
func WithCloner(c repository.Cloner) Option {
	return func(i *Installer) {
		i.cloner = c
	}
}

// WithRunner replaces the command runner used for the SDK build script.
func WithRunner(r Runner) Option {
	return func(i *Installer) {
		i.run = r
	}
}

// New creates an Installer for the toolchain releases of repo.
func New(repo string, opts ...Option) *Installer {
	i := &Installer{
		repo:       repo,
		apiBase:    githubAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Minute},
		out:        io.Discard,
		run:        execRunner,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.cloner == nil {
		i.cloner = repository.NewGitCloner(fsutil.OS())
	}
	return i
}

func execRunner(ctx context.Context, dir string, out io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

// ValidateTarget checks that target is a plain toolchain name such as
// "kindlehf".
func ValidateTarget(target string) error {
	if target == "" || target == "." || target == ".." || strings.ContainsAny(target, `/\`) {
		return fmt.Errorf("invalid target %q", target)
	}
	return nil
}
