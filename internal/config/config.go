package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/progzone122/kff/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys. Each is also readable from the environment as KFF_<KEY>.
const (
	KeyTemplatesDir  = "templates_dir"
	KeyRegistryURL   = "registry_url"
	KeyScratchDir    = "scratch_dir"
	KeyToolchainRepo = "toolchain_repo"
	KeySDKRepoURL    = "sdk_repo_url"
	KeyKSDK          = "ksdk"
)

// Keys lists the settings accepted by `kff config set`.
var Keys = []string{
	KeyTemplatesDir,
	KeyRegistryURL,
	KeyScratchDir,
	KeyToolchainRepo,
	KeySDKRepoURL,
}

// Settings is the resolved configuration passed to the resolver, generator,
// installer and doctor at construction time.
type Settings struct {
	TemplatesDir  string // template cache root
	RegistryURL   string // registry document endpoint
	ScratchDir    string // parent of per-template scratch workspaces
	ToolchainRepo string // owner/repo publishing toolchain releases
	SDKRepoURL    string // git URL of the SDK generator
	KSDK          string // installed SDK path, from $KSDK
}

// Dir returns the path to the config directory (~/.kff/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.kff/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	_ = viper.BindEnv(KeyKSDK, "KSDK")

	viper.SetDefault(KeyTemplatesDir, DefaultTemplatesDir())
	viper.SetDefault(KeyRegistryURL, branding.RegistryURL())
	viper.SetDefault(KeyScratchDir, filepath.Join(os.TempDir(), branding.CLIName()))
	viper.SetDefault(KeyToolchainRepo, branding.ToolchainRepo())
	viper.SetDefault(KeySDKRepoURL, branding.SDKRepoURL())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns a snapshot of the resolved settings. Load must run first.
func Current() Settings {
	return Settings{
		TemplatesDir:  viper.GetString(KeyTemplatesDir),
		RegistryURL:   viper.GetString(KeyRegistryURL),
		ScratchDir:    viper.GetString(KeyScratchDir),
		ToolchainRepo: viper.GetString(KeyToolchainRepo),
		SDKRepoURL:    viper.GetString(KeySDKRepoURL),
		KSDK:          viper.GetString(KeyKSDK),
	}
}

// DefaultTemplatesDir returns the template cache root used when nothing is
// configured: $XDG_DATA_HOME/kff/templates, or ~/.local/share/kff/templates.
func DefaultTemplatesDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, branding.CLIName(), "templates")
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
