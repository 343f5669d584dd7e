package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klwong/tripchat/src/config"
	"github.com/klwong/tripchat/src/placesapi"
	"github.com/klwong/tripchat/src/storage"
)

// App represents the main application with all services
type App struct {
	Places *placesapi.Client
	Store  *storage.DB
	Logger *slog.Logger
	Config *config.Config
}

// New creates a new App instance with all services initialized
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	dataDir := cfg.Data.Directory
	dbPath := ""
	if dataDir != "" {
		dbPath = filepath.Join(dataDir, "transcripts.db")
	} else {
		dbPath = config.GetDefaultStoragePaths().DatabasePath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	places := placesapi.NewClient(placesapi.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RetryCount: cfg.API.RetryCount,
		RetryDelay: time.Duration(cfg.API.RetryDelaySeconds) * time.Second,
		Logger:     logger,
	})

	return &App{
		Places: places,
		Store:  store,
		Logger: logger,
		Config: cfg,
	}, nil
}

// Close closes all resources held by the app
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
