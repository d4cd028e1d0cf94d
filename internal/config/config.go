// Package config loads the service configuration from an optional YAML
// file with environment-variable overrides.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config holds the runtime settings for the posture backend
type Config struct {
	Port             string `yaml:"port"`
	CacheTTLMinutes  int    `yaml:"cache_ttl_minutes"`
	TrendDaysDefault int    `yaml:"trend_days_default"`
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		Port:             "8080",
		CacheTTLMinutes:  15,
		TrendDaysDefault: 7,
	}
}

// Load reads the configuration file at path (or $CONFIG_FILE when path
// is empty), then applies environment overrides. A missing file is not
// an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		content, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if ttl := os.Getenv("CACHE_TTL_MINUTES"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.CacheTTLMinutes = n
		}
	}
	if days := os.Getenv("TREND_DAYS_DEFAULT"); days != "" {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			cfg.TrendDaysDefault = n
		}
	}

	return cfg, nil
}
