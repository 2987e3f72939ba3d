package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML (or YAML) file.
type Config struct {
	Database DatabaseConfig `toml:"database" yaml:"database"`
	UI       UIConfig       `toml:"ui" yaml:"ui"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// DatabaseConfig locates the Lollypop catalog and playlist databases.
type DatabaseConfig struct {
	Driver        string `toml:"driver" yaml:"driver"`
	CatalogPath   string `toml:"catalog_path" yaml:"catalog_path"`
	PlaylistsPath string `toml:"playlists_path" yaml:"playlists_path"`
}

// UIConfig contains terminal interface settings.
type UIConfig struct {
	BulkLimit     int `toml:"bulk_limit" yaml:"bulk_limit"`
	NotifySeconds int `toml:"notify_seconds" yaml:"notify_seconds"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// LoadConfig reads and parses a configuration file from the specified path.
//
// Files ending in .yaml or .yml are decoded as YAML, everything else as TOML.
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = toml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverCGO, DriverPure:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Database.CatalogPath == "" || c.Database.PlaylistsPath == "" {
		return fmt.Errorf("%w: database paths must be set", ErrInvalidConfig)
	}
	if c.UI.BulkLimit < 0 {
		return fmt.Errorf("%w: bulk_limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath is where the CLI looks for a config file when none is given.
func DefaultConfigPath() string {
	return ExpandPath("~/.config/popmix/config.toml")
}
