package placesapi

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds configuration for the places API client.
type Config struct {
	// BaseURL is the root of the suggestion service. Defaults to the local
	// development server.
	BaseURL string

	// Timeout bounds every request, including retries of a single attempt.
	// A hung service resolves as a transport failure instead of blocking the
	// session forever.
	Timeout time.Duration

	// RetryCount is the number of attempts for retryable failures.
	RetryCount int

	// RetryDelay is the base delay between attempts, scaled linearly.
	RetryDelay time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client

	Logger *slog.Logger
}
