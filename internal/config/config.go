package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/emeursing/catfetch/internal/images"
)

// DefaultOutputDir is where images are saved unless configured otherwise
const DefaultOutputDir = "~/Desktop/cat photos"

// Config holds the settings read from the YAML file and the environment
type Config struct {
	BaseURL   string `yaml:"base_url"`
	OutputDir string `yaml:"output_dir"`
	Timeout   string `yaml:"timeout"` // Go duration, empty = no timeout
	Opener    string `yaml:"opener"`
	LogLevel  string `yaml:"log_level"`
	Progress  bool   `yaml:"progress"`
}

func Default() *Config {
	return &Config{
		BaseURL:   images.DefaultBaseURL,
		OutputDir: DefaultOutputDir,
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("No config file, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CATFETCH_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("CATFETCH_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("CATFETCH_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("CATFETCH_OPENER"); v != "" {
		c.Opener = v
	}
	if v := os.Getenv("CATFETCH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// TimeoutDuration parses Timeout. Zero means requests never time out.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

// ResolveOutputDir expands a leading ~ to the user's home directory
func (c *Config) ResolveOutputDir() (string, error) {
	dir := c.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		dir = filepath.Join(homeDir, dir[1:])
	}
	return dir, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to Info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewFetcher builds an image fetcher from the configuration
func (c *Config) NewFetcher() (*images.Fetcher, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	outputDir, err := c.ResolveOutputDir()
	if err != nil {
		return nil, err
	}
	return images.NewFetcher(c.BaseURL, outputDir, timeout), nil
}
