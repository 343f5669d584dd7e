package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// Loader handles loading and merging configurations from multiple sources
type Loader struct {
	fs         afero.Fs
	precedence ConfigPrecedence
	validator  *Validator
}

// NewLoader creates a new configuration loader backed by the OS filesystem
func NewLoader(precedence ConfigPrecedence) *Loader {
	return NewLoaderWithFs(afero.NewOsFs(), precedence)
}

// NewLoaderWithFs creates a loader on an explicit filesystem, mainly for tests
func NewLoaderWithFs(fs afero.Fs, precedence ConfigPrecedence) *Loader {
	return &Loader{
		fs:         fs,
		precedence: precedence,
		validator:  NewValidator(),
	}
}

// Load loads configuration from all sources and merges them
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	sources := []struct {
		path   string
		source ConfigSource
	}{
		{l.precedence.UserConfig, SourceUser},
		{l.precedence.ProjectConfig, SourceProject},
		{l.precedence.LocalConfig, SourceLocal},
	}

	for _, src := range sources {
		if src.path == "" {
			continue
		}

		if cfg, err := l.loadFile(src.path); err == nil {
			config = l.mergeConfigs(config, cfg)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s config from %s: %w", src.source, src.path, err)
		}
	}

	if l.precedence.EnvironmentPrefix != "" {
		l.applyEnvironmentOverrides(config)
	}

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFile loads a single configuration file
func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &config, nil
}

// SaveFile saves configuration to a file
func (l *Loader) SaveFile(config *Config, path string) error {
	if err := l.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	dir := filepath.Dir(path)
	if err := l.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(l.fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// mergeConfigs merges two configurations with the second taking precedence
func (l *Loader) mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.TimeoutSeconds != 0 {
		result.API.TimeoutSeconds = override.API.TimeoutSeconds
	}
	if override.API.RetryCount != 0 {
		result.API.RetryCount = override.API.RetryCount
	}
	if override.API.RetryDelaySeconds != 0 {
		result.API.RetryDelaySeconds = override.API.RetryDelaySeconds
	}

	if override.Chat.PageSize != 0 {
		result.Chat.PageSize = override.Chat.PageSize
	}
	if override.Chat.DefaultCity != "" {
		result.Chat.DefaultCity = override.Chat.DefaultCity
	}
	if override.Chat.DefaultCategory != "" {
		result.Chat.DefaultCategory = override.Chat.DefaultCategory
	}

	if override.Data.Directory != "" {
		result.Data.Directory = override.Data.Directory
	}

	if override.Observability.Logging.Level != "" {
		result.Observability.Logging.Level = override.Observability.Logging.Level
	}
	if override.Observability.Logging.Format != "" {
		result.Observability.Logging.Format = override.Observability.Logging.Format
	}

	return &result
}

// applyEnvironmentOverrides applies environment variable overrides to config
func (l *Loader) applyEnvironmentOverrides(config *Config) {
	prefix := l.precedence.EnvironmentPrefix

	if baseURL := os.Getenv(prefix + "_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if city := os.Getenv(prefix + "_CITY"); city != "" {
		config.Chat.DefaultCity = city
	}
	if category := os.Getenv(prefix + "_CATEGORY"); category != "" {
		config.Chat.DefaultCategory = category
	}
	if pageSize := os.Getenv(prefix + "_PAGE_SIZE"); pageSize != "" {
		if n, err := strconv.Atoi(pageSize); err == nil {
			config.Chat.PageSize = n
		}
	}
	if level := os.Getenv(prefix + "_LOG_LEVEL"); level != "" {
		config.Observability.Logging.Level = level
	}
}

// GetConfigPaths returns the configuration file paths to check
func GetConfigPaths() ConfigPrecedence {
	userConfigPath := filepath.Join(xdg.ConfigHome, "tripchat", "config.json")

	return ConfigPrecedence{
		UserConfig:        userConfigPath,
		ProjectConfig:     filepath.Join(".tripchat", "config.json"),
		LocalConfig:       filepath.Join(".tripchat", "config.local.json"),
		EnvironmentPrefix: "TRIPCHAT",
	}
}
