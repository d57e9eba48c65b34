package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"pkgview/pkg/manager"
)

// Config represents the complete pkgview configuration.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Exec      ExecConfig      `toml:"exec"`
	Details   DetailsConfig   `toml:"details"`
	Output    OutputConfig    `toml:"output"`
	Log       LogConfig       `toml:"log"`
	Snapshots SnapshotsConfig `toml:"snapshots"`
}

// GeneralConfig contains general pkgview settings.
type GeneralConfig struct {
	// DefaultBackend is the backend shown at startup: "pkg", "apt" or "pip".
	DefaultBackend manager.Kind `toml:"default_backend"`
}

// ExecConfig controls how package manager commands are run.
type ExecConfig struct {
	// Timeout bounds every command. Zero disables the limit.
	Timeout Duration `toml:"timeout"`
}

// DetailsConfig controls the details pane.
type DetailsConfig struct {
	// Cache keeps fetched details for the rest of the session.
	Cache bool `toml:"cache"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (respects NO_COLOR env var).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose enables detailed output.
	Verbose bool `toml:"verbose"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// File is the log destination. Empty means LogPath().
	File string `toml:"file"`

	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// SnapshotsConfig controls the snapshot store.
type SnapshotsConfig struct {
	// Max is the number of snapshots kept by "snapshot prune".
	Max int `toml:"max"`
}

// Duration is a time.Duration written as a string such as "10s".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			DefaultBackend: manager.KindPkg,
		},
		Exec: ExecConfig{
			Timeout: Duration{10 * time.Second},
		},
		Details: DetailsConfig{
			Cache: true,
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			Verbose: false,
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
		Snapshots: SnapshotsConfig{
			Max: 50,
		},
	}
}

// Load loads the configuration from the default path.
// If the config file doesn't exist, it returns the default configuration.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path.
// If the config file doesn't exist, it returns the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Parse the config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges that the TOML types cannot express.
func (c *Config) Validate() error {
	var errs []error

	if !c.General.DefaultBackend.Valid() {
		errs = append(errs, fmt.Errorf("general.default_backend: %w", manager.ErrUnknownKind))
	}
	if c.Exec.Timeout.Duration < 0 {
		errs = append(errs, errors.New("exec.timeout must not be negative"))
	}
	if c.Snapshots.Max < 1 {
		errs = append(errs, errors.New("snapshots.max must be at least 1"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}

// SaveTo writes the configuration as TOML to path, creating its
// directory.
func (c *Config) SaveTo(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return c.Encode(f)
}

// Encode writes the configuration as TOML to w.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// LogFile returns the configured log file, or the default log path.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return LogPath()
}

// ShouldUseColor returns true if colored output should be used.
// Respects the NO_COLOR environment variable.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
