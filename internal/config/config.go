// Package config loads versefinder configuration from YAML, a .env file and
// the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
	"github.com/FocuswithJustin/versefinder/internal/logging"
	"github.com/FocuswithJustin/versefinder/internal/validation"
)

// Environment variables that override file settings.
const (
	EnvYouVersionKey = "YVP_APP_KEY"
	EnvAPIBibleKey   = "API_BIBLE_APP_KEY"
	EnvLogLevel      = "VERSEFINDER_LOG_LEVEL"
	EnvSearchDB      = "VERSEFINDER_SEARCH_DB"
)

// Config is the complete versefinder configuration.
type Config struct {
	Log                LogConfig            `yaml:"log"`
	YouVersion         ProviderConfig       `yaml:"youversion"`
	APIBible           ProviderConfig       `yaml:"apibible"`
	Search             SearchConfig         `yaml:"search"`
	Cache              CacheConfig          `yaml:"cache"`
	Translations       TranslationOverrides `yaml:"translations"`
	DefaultTranslation string               `yaml:"default_translation"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ProviderConfig configures one upstream content provider.
type ProviderConfig struct {
	BaseURL     string `yaml:"base_url"`
	AppKey      string `yaml:"app_key"`
	Timeout     string `yaml:"timeout"`
	Concurrency int    `yaml:"concurrency"`
	Format      string `yaml:"format"` // youversion: text, html; apibible: json, html
}

// SearchConfig configures the local phrase index.
type SearchConfig struct {
	DatabasePath string `yaml:"database_path"`
	Limit        int    `yaml:"limit"`
}

// CacheConfig configures memoization of normalized references. Size 0
// disables it.
type CacheConfig struct {
	Size int    `yaml:"size"`
	TTL  string `yaml:"ttl"`
}

// GetTTL returns the cache TTL, defaulting to one hour.
func (c CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// TranslationOverrides adds or replaces translation ids per provider.
type TranslationOverrides struct {
	YouVersion map[string]string `yaml:"youversion"`
	APIBible   map[string]string `yaml:"apibible"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		YouVersion: ProviderConfig{
			BaseURL:     "https://api.youversion.com",
			Timeout:     "30s",
			Concurrency: 8,
			Format:      "text",
		},
		APIBible: ProviderConfig{
			BaseURL:     "https://rest.api.bible",
			Timeout:     "30s",
			Concurrency: 1,
			Format:      "json",
		},
		Search: SearchConfig{
			DatabasePath: "verses.db",
			Limit:        20,
		},
		Cache: CacheConfig{
			Size: 1024,
			TTL:  "1h",
		},
		DefaultTranslation: "KJV",
	}
}

// Load reads configuration from path, then envFile, then the environment.
// A missing config file or env file is not an error; empty paths are
// skipped.
func Load(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logging.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, apperrors.NewIO("read", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if envFile != "" {
		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv(EnvYouVersionKey); key != "" {
		c.YouVersion.AppKey = key
	}
	if key := os.Getenv(EnvAPIBibleKey); key != "" {
		c.APIBible.AppKey = key
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if path := os.Getenv(EnvSearchDB); path != "" {
		c.Search.DatabasePath = path
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &apperrors.ValidationError{Field: "log.level", Value: c.Log.Level, Message: err.Error()}
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return &apperrors.ValidationError{Field: "log.format", Value: c.Log.Format, Message: err.Error()}
	}

	if err := c.YouVersion.validate("youversion", "text", "html"); err != nil {
		return err
	}
	if err := c.APIBible.validate("apibible", "json", "html"); err != nil {
		return err
	}

	if err := validation.ValidatePath(c.Search.DatabasePath); err != nil {
		return &apperrors.ValidationError{Field: "search.database_path", Message: err.Error(), Err: err}
	}
	if c.Search.Limit < 1 {
		return apperrors.NewValidation("search.limit", "must be at least 1")
	}
	if c.Cache.Size < 0 {
		return apperrors.NewValidation("cache.size", "must not be negative")
	}
	if c.Cache.TTL != "" {
		if d, err := time.ParseDuration(c.Cache.TTL); err != nil || d <= 0 {
			return &apperrors.ValidationError{Field: "cache.ttl", Value: c.Cache.TTL, Message: "must be a positive duration"}
		}
	}
	return nil
}

func (p *ProviderConfig) validate(name string, formats ...string) error {
	if err := validation.ValidateBaseURL(p.BaseURL); err != nil {
		return &apperrors.ValidationError{Field: name + ".base_url", Value: p.BaseURL, Message: err.Error(), Err: err}
	}
	if p.Timeout != "" {
		if d, err := time.ParseDuration(p.Timeout); err != nil || d <= 0 {
			return &apperrors.ValidationError{Field: name + ".timeout", Value: p.Timeout, Message: "must be a positive duration"}
		}
	}
	if p.Concurrency < 1 {
		return apperrors.NewValidation(name+".concurrency", "must be at least 1")
	}

	format := strings.ToLower(p.Format)
	for _, f := range formats {
		if format == f {
			return nil
		}
	}
	return &apperrors.ValidationError{
		Field:   name + ".format",
		Value:   p.Format,
		Message: "must be one of " + strings.Join(formats, ", "),
	}
}

// GetTimeout returns the provider timeout as a duration.
func (p ProviderConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
