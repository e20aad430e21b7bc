// Package config loads optional scan defaults from a YAML file. Flags always
// override what the file supplies.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no config flag is given.
const DefaultPath = ".mdlinkcheck.yaml"

// Config supplies defaults for a scan.
type Config struct {
	IgnoreHeaderLinks bool   `yaml:"ignore_header_links"`
	DisallowDirLinks  bool   `yaml:"disallow_dir_links"`
	Format            string `yaml:"format,omitempty"`
}

// Load reads configuration from the specified file. A missing file is not an
// error; defaults are returned. Environment variables are expanded in the raw
// YAML, and a .env file in the working directory is loaded first if present.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg := &Config{Format: "text"}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}

	return cfg, nil
}
