// Package config loads and saves the tool configuration: container
// metadata defaults for the compiler and runtime defaults for the
// emulator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the persisted tool configuration.
type Config struct {
	// Container metadata used when wrapping compiled code
	Container struct {
		Name           string `toml:"name"`
		InternalName   string `toml:"internal_name"`
		ShortName      string `toml:"short_name"`
		Version        string `toml:"version"`
		SelectedIcon   string `toml:"selected_icon"`
		UnselectedIcon string `toml:"unselected_icon"`
	} `toml:"container"`

	// Emulator settings
	Emulator struct {
		Verbose  bool   `toml:"verbose"`
		MaxTicks uint64 `toml:"max_ticks"`
	} `toml:"emulator"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Container.Name = "rizm"
	cfg.Container.InternalName = "@RIZM"
	cfg.Container.ShortName = "rizm"
	cfg.Container.Version = "01.00.0000"

	cfg.Emulator.Verbose = false
	cfg.Emulator.MaxTicks = 0 // unlimited

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rizm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "rizm.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rizm")

	default:
		return "rizm.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "rizm.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close config file: %v\n", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
