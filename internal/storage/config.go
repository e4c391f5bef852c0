package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vidyasagar/kasten/internal/theme"
)

// Config holds kasten user configuration.
type Config struct {
	Theme              string `json:"theme"`
	DBPath             string `json:"db_path"`              // empty means kasten.db under DataDir
	TrailWindow        int    `json:"trail_window"`         // trail window size before the panel reports its height
	CaptureTimeoutSecs int    `json:"capture_timeout_secs"` // HTTP timeout for :clip fetches
	path               string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:              "default",
		DBPath:             "",
		TrailWindow:        8,
		CaptureTimeoutSecs: 15,
	}
}

// Validate checks the configuration before the TUI starts.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Theme, validation.Required, validation.In(themeNames()...)),
		validation.Field(&c.TrailWindow, validation.Required, validation.Min(1)),
		validation.Field(&c.CaptureTimeoutSecs, validation.Required, validation.Min(1), validation.Max(120)),
	)
}

func themeNames() []interface{} {
	names := theme.List()
	vals := make([]interface{}, len(names))
	for i, name := range names {
		vals[i] = name
	}
	return vals
}

// LoadConfig loads configuration from the standard config directory. A
// missing file is not an error: defaults are written and returned. The
// KASTEN_DB_PATH environment variable overrides the configured database
// path either way.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "config.json")
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if os.IsNotExist(err) {
		// Save default config.
		cfg.Save()
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		cfg.path = path
	}

	if env := os.Getenv("KASTEN_DB_PATH"); env != "" {
		cfg.DBPath = env
	}

	return &cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// DatabasePath resolves the SQLite file location: the configured path when
// set, otherwise kasten.db under the data directory.
func (c *Config) DatabasePath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kasten.db"), nil
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "kasten")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, "kasten")
		} else {
			dir = filepath.Join(home, ".kasten")
		}
	default: // Linux, BSD, etc.
		xdgData := os.Getenv("XDG_DATA_HOME")
		if xdgData != "" {
			dir = filepath.Join(xdgData, "kasten")
		} else {
			dir = filepath.Join(home, ".local", "share", "kasten")
		}
	}

	return dir, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "kasten")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, "kasten")
		} else {
			dir = filepath.Join(home, ".kasten")
		}
	default:
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig != "" {
			dir = filepath.Join(xdgConfig, "kasten")
		} else {
			dir = filepath.Join(home, ".config", "kasten")
		}
	}

	return dir, nil
}
