// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	GitHubRepo    string `yaml:"github_repo"`
	RegistryURL   string `yaml:"registry_url"`
	ToolchainRepo string `yaml:"toolchain_repo"`
	SDKRepoURL    string `yaml:"sdk_repo_url"`
}

// Banner is printed when a generation run starts.
const Banner = `
:::    :::  ::::::::::  ::::::::::
:+:   :+:   :+:         :+:
+:+  +:+    +:+         +:+
+#++:++     :#::+::#    :#::+::#
+#+  +#+    +#+         +#+
#+#   #+#   #+#         #+#
###    ###  ###         ###       meow <3
`

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "kff",
			DisplayName:   "KFF",
			Description:   "Project generator and toolchain manager for Kindle homebrew",
			HomeDir:       ".kff",
			EnvPrefix:     "KFF",
			GoModule:      "github.com/progzone122/kff",
			GitHubRepo:    "progzone122/kff",
			RegistryURL:   "https://raw.githubusercontent.com/progzone122/kff/main/registry/v1/templates.json",
			ToolchainRepo: "koreader/koxtoolchain",
			SDKRepoURL:    "https://github.com/KindleModding/kindle-sdk.git",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "kff").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".kff").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "KFF").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of the tool itself.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RegistryURL returns the default template registry document URL.
func RegistryURL() string { load(); return defaults.RegistryURL }

// ToolchainRepo returns the "owner/repo" that publishes toolchain releases.
func ToolchainRepo() string { load(); return defaults.ToolchainRepo }

// SDKRepoURL returns the git URL of the Kindle SDK generator.
func SDKRepoURL() string { load(); return defaults.SDKRepoURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("templates_dir") → "KFF_TEMPLATES_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
