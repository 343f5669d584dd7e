package config

// Categories the suggestion service serves. The service rejects anything else.
var KnownCategories = []string{"attractions", "hotels", "restaurants"}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL:           "http://localhost:5000",
			TimeoutSeconds:    30,
			RetryCount:        3,
			RetryDelaySeconds: 1,
		},
		Chat: ChatConfig{
			PageSize:        2,
			DefaultCity:     "kl",
			DefaultCategory: "attractions",
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "warn",
				Format: "text",
			},
		},
	}
}
