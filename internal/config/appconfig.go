// Package config provides configuration management for tidypass.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AntoineGS/tidypass/internal/vault"
	"gopkg.in/yaml.v3"
)

// AppConfig is the configuration stored in ~/.config/tidypass/
type AppConfig struct {
	// Layout is "grouped" (many accounts per service) or "flat" (one)
	Layout string `yaml:"layout,omitempty"`
	// Database enables persistence when set; empty keeps the vault in memory
	Database string `yaml:"database,omitempty"`
	// LogFile receives verbose logs while the TUI owns the terminal
	LogFile string `yaml:"log_file,omitempty"`
}

const (
	appConfigDir  = ".config/tidypass"
	appConfigFile = "config.yaml"
)

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{Layout: vault.LayoutNameGrouped}
}

// LoadAppConfig loads the app configuration from ~/.config/tidypass/config.yaml.
// A missing file is not an error; defaults are returned instead.
func LoadAppConfig() (*AppConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	return LoadAppConfigFrom(filepath.Join(home, appConfigDir, appConfigFile))
}

// LoadAppConfigFrom loads the app configuration from an explicit path.
func LoadAppConfigFrom(configPath string) (*AppConfig, error) {
	data, err := os.ReadFile(configPath) //nolint:gosec // path is from user home dir or flag, intentional
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}

		return nil, fmt.Errorf("reading app config: %w", err)
	}

	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing app config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	cfg.Database = ExpandPath(cfg.Database)
	cfg.LogFile = ExpandPath(cfg.LogFile)

	return cfg, nil
}

// SaveAppConfig saves the app configuration to ~/.config/tidypass/config.yaml
func SaveAppConfig(cfg *AppConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	configDir := filepath.Join(home, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, appConfigFile)

	data, err := marshalYAML(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	content := fmt.Sprintf("# tidypass app configuration\n# Leave database empty to keep the vault in memory only\n\n%s", string(data))

	// Use 0600 permissions to restrict access to owner only
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks field values and reports every problem at once.
func (a *AppConfig) Validate() error {
	errs := &ValidationErrors{}

	if _, err := vault.ParseLayout(a.Layout); err != nil {
		errs.Add(NewFieldError("layout", a.Layout, ErrUnknownLayout))
	}

	if strings.ContainsRune(a.Database, '\x00') {
		errs.Add(NewFieldError("database", a.Database, ErrInvalidConfig))
	}

	if strings.ContainsRune(a.LogFile, '\x00') {
		errs.Add(NewFieldError("log_file", a.LogFile, ErrInvalidConfig))
	}

	if errs.HasErrors() {
		return errs
	}

	return nil
}

// VaultLayout returns the parsed layout. Call Validate first.
func (a *AppConfig) VaultLayout() vault.Layout {
	layout, _ := vault.ParseLayout(a.Layout) //nolint:errcheck // validated on load
	return layout
}

// AppConfigPath returns the path where the app config is stored.
// Returns an empty string if the home directory cannot be determined.
func AppConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, appConfigDir, appConfigFile)
}

// ExpandPath expands ~ and environment variables in a single path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

func marshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
