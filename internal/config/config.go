package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Decoder contains configuration for the external event-log decoder.
type Decoder struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Output contains CSV shape configuration.
type Output struct {
	Delimiter   string `toml:"delimiter"`
	Placeholder string `toml:"placeholder"`
}

// Journal contains configuration for the SQLite run journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for evtsift.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Decoder Decoder `toml:"decoder"`
	Output  Output  `toml:"output"`
	Journal Journal `toml:"journal"`
	Logging Logging `toml:"logging"`

	// Workers is the decoder pool size; 0 selects host cores minus one.
	Workers int `toml:"workers"`
}

// DefaultConfigPath returns the absolute path of the default configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/evtsift/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The bool reports
// whether a file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the run needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Journal.Enabled {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// ExpandPath resolves ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Output.Delimiter)
	return r
}

// PlaceholderRune returns the configured placeholder as a rune.
func (c *Config) PlaceholderRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Output.Placeholder)
	return r
}

// DecoderTimeout returns the per-file decoder timeout.
func (c *Config) DecoderTimeout() time.Duration {
	return time.Duration(c.Decoder.TimeoutSeconds) * time.Second
}
