package cli

import (
	"fmt"
	"path/filepath"

	"github.com/progzone122/kff/internal/branding"
	"github.com/progzone122/kff/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates Kindle homebrew projects from templates and installs
the koxtoolchain cross-compilers and Kindle SDK needed to build them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// settings returns the current configuration with directory paths made
// absolute, since the filesystem provider is rooted at "/".
func settings() (config.Settings, error) {
	s := config.Current()
	for _, p := range []*string{&s.TemplatesDir, &s.ScratchDir} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return s, fmt.Errorf("resolving %s: %w", *p, err)
		}
		*p = abs
	}
	return s, nil
}
