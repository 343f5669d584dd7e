package config

import (
	"testing"

	"github.com/spf13/afero"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", config.Version)
	}

	if config.API.BaseURL != "http://localhost:5000" {
		t.Errorf("Expected local base URL, got %s", config.API.BaseURL)
	}

	if config.API.TimeoutSeconds != 30 {
		t.Errorf("Expected 30s timeout, got %d", config.API.TimeoutSeconds)
	}

	if config.Chat.PageSize != 2 {
		t.Errorf("Expected page size 2, got %d", config.Chat.PageSize)
	}

	if config.Chat.DefaultCategory != "attractions" {
		t.Errorf("Expected default category attractions, got %s", config.Chat.DefaultCategory)
	}
}

func TestConfigValidation(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "page size too large",
			config: func() *Config {
				c := DefaultConfig()
				c.Chat.PageSize = 50
				return c
			}(),
			wantErr: true,
		},
		{
			name: "unknown category",
			config: func() *Config {
				c := DefaultConfig()
				c.Chat.DefaultCategory = "beaches"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: func() *Config {
				c := DefaultConfig()
				c.Observability.Logging.Level = "loud"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "negative timeout",
			config: func() *Config {
				c := DefaultConfig()
				c.API.TimeoutSeconds = -1
				return c
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoaderMergesSources(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/home/user/.config/tripchat/config.json", []byte(`{
		"api": {"base_url": "http://places.example.com"},
		"chat": {"page_size": 3}
	}`), 0644)
	afero.WriteFile(fs, ".tripchat/config.json", []byte(`{
		"chat": {"default_city": "penang", "default_category": "restaurants"}
	}`), 0644)

	loader := NewLoaderWithFs(fs, ConfigPrecedence{
		UserConfig:    "/home/user/.config/tripchat/config.json",
		ProjectConfig: ".tripchat/config.json",
	})

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.API.BaseURL != "http://places.example.com" {
		t.Errorf("Expected user base URL, got %s", config.API.BaseURL)
	}
	if config.Chat.PageSize != 3 {
		t.Errorf("Expected page size 3, got %d", config.Chat.PageSize)
	}
	if config.Chat.DefaultCity != "penang" {
		t.Errorf("Expected project city penang, got %s", config.Chat.DefaultCity)
	}
	// Untouched fields keep their defaults.
	if config.API.TimeoutSeconds != 30 {
		t.Errorf("Expected default timeout, got %d", config.API.TimeoutSeconds)
	}
}

func TestLoaderRejectsInvalidMergedConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, ".tripchat/config.json", []byte(`{
		"chat": {"default_category": "volcanoes"}
	}`), 0644)

	loader := NewLoaderWithFs(fs, ConfigPrecedence{
		ProjectConfig: ".tripchat/config.json",
	})

	if _, err := loader.Load(); err == nil {
		t.Error("Load() expected validation error, got nil")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("TRIPCHAT_BASE_URL", "http://env.example.com")
	t.Setenv("TRIPCHAT_PAGE_SIZE", "4")
	t.Setenv("TRIPCHAT_CATEGORY", "hotels")

	loader := NewLoaderWithFs(afero.NewMemMapFs(), ConfigPrecedence{
		EnvironmentPrefix: "TRIPCHAT",
	})

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.API.BaseURL != "http://env.example.com" {
		t.Errorf("Expected env base URL, got %s", config.API.BaseURL)
	}
	if config.Chat.PageSize != 4 {
		t.Errorf("Expected page size 4, got %d", config.Chat.PageSize)
	}
	if config.Chat.DefaultCategory != "hotels" {
		t.Errorf("Expected category hotels, got %s", config.Chat.DefaultCategory)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	loader := NewLoaderWithFs(fs, ConfigPrecedence{
		UserConfig: "/cfg/tripchat/config.json",
	})

	config := DefaultConfig()
	config.Chat.DefaultCity = "melaka"

	if err := loader.SaveFile(config, "/cfg/tripchat/config.json"); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Chat.DefaultCity != "melaka" {
		t.Errorf("Expected saved city melaka, got %s", loaded.Chat.DefaultCity)
	}
}
