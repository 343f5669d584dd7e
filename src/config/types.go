package config

// Config represents the complete configuration for tripchat
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// API configuration for the suggestion service
	API APIConfig `json:"api"`

	// Chat session configuration
	Chat ChatConfig `json:"chat"`

	// Data directory configuration
	Data DataConfig `json:"data,omitempty"`

	// Observability configuration
	Observability ObservabilityConfig `json:"observability,omitempty"`
}

// APIConfig defines how the suggestion service is reached
type APIConfig struct {
	// BaseURL is the root URL of the suggestion service
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// TimeoutSeconds bounds each request; a hung request resolves as a
	// failure after this many seconds
	TimeoutSeconds int `json:"timeout_seconds,omitempty" validate:"gte=0,lte=300"`

	// RetryCount is the number of attempts for retryable failures
	RetryCount int `json:"retry_count,omitempty" validate:"gte=0,lte=10"`

	// RetryDelaySeconds is the base delay between retry attempts
	RetryDelaySeconds int `json:"retry_delay_seconds,omitempty" validate:"gte=0,lte=60"`
}

// ChatConfig defines session behavior
type ChatConfig struct {
	// PageSize is how many extra results a "show more" request fetches
	PageSize int `json:"page_size,omitempty" validate:"omitempty,gte=1,lte=10"`

	// DefaultCity preselects a city when none is given on the command line
	DefaultCity string `json:"default_city,omitempty"`

	// DefaultCategory preselects a category when none is given
	DefaultCategory string `json:"default_category,omitempty" validate:"omitempty,category"`
}

// DataConfig defines data directory configuration
type DataConfig struct {
	// Directory where the transcript database is stored
	Directory string `json:"directory,omitempty"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	// Logging configuration
	Logging LoggingConfig `json:"logging,omitempty"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level,omitempty" validate:"omitempty,log_level"`

	// Format is the output format (text, json)
	Format string `json:"format,omitempty" validate:"omitempty,log_format"`
}

// ConfigSource identifies where a configuration file came from
type ConfigSource string

const (
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceLocal   ConfigSource = "local"
)

// ConfigPrecedence lists configuration file locations in merge order
type ConfigPrecedence struct {
	UserConfig        string
	ProjectConfig     string
	LocalConfig       string
	EnvironmentPrefix string
}
