// Package config loads the settings for the example command line tool:
// a YAML file with environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

type Config struct {
	// Credentials
	DevID   string `yaml:"dev_id"`
	AuthKey string `yaml:"auth_key"`

	// Client
	BaseURL       string `yaml:"base_url"`
	Language      string `yaml:"language"`
	CacheDisabled bool   `yaml:"cache_disabled"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Load reads the YAML file at path when one exists, then applies environment
// overrides. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Language: "english",
		LogLevel: "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	cfg.DevID = getEnv("PALADINS_DEV_ID", cfg.DevID)
	cfg.AuthKey = getEnv("PALADINS_AUTH_KEY", cfg.AuthKey)
	cfg.BaseURL = getEnv("PALADINS_BASE_URL", cfg.BaseURL)
	cfg.Language = getEnv("PALADINS_LANGUAGE", cfg.Language)
	cfg.CacheDisabled = getEnvBool("PALADINS_CACHE_DISABLED", cfg.CacheDisabled)
	cfg.LogLevel = getEnv("PALADINS_LOG_LEVEL", cfg.LogLevel)

	if cfg.DevID == "" || cfg.AuthKey == "" {
		return nil, fmt.Errorf("PALADINS_DEV_ID and PALADINS_AUTH_KEY are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
