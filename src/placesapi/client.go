package placesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/klwong/tripchat/src/chat"
)

const (
	defaultBaseURL = "http://localhost:5000"
	defaultTimeout = 30 * time.Second
)

var _ chat.SuggestionService = (*Client)(nil)

// Client is the HTTP client for the suggestion and reaction service.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a new places API client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RetryCount == 0 {
		config.RetryCount = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "places_client")

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
		baseURL:    config.BaseURL,
	}
}

// Suggest asks the service for ranked venues matching a free-text query.
func (c *Client) Suggest(ctx context.Context, req *chat.SuggestRequest) (*chat.SuggestResponse, error) {
	logger := c.logger.With("method", "Suggest", "query", req.Query)
	logger.Debug("sending suggestion request")

	resp, err := c.postForSuggestions(ctx, "/chat", req)
	if err != nil {
		return nil, err
	}
	logger.Info("suggestion request successful",
		"suggestions", len(resp.Suggestions),
		"total_results", resp.TotalResults)
	return resp, nil
}

// ShowMore fetches the next slice of results for an earlier query.
func (c *Client) ShowMore(ctx context.Context, req *chat.PageRequest) (*chat.SuggestResponse, error) {
	logger := c.logger.With("method", "ShowMore", "query", req.Query, "offset", req.Offset)
	logger.Debug("sending continuation request")

	resp, err := c.postForSuggestions(ctx, "/show_more", req)
	if err != nil {
		return nil, err
	}
	logger.Info("continuation request successful", "suggestions", len(resp.Suggestions))
	return resp, nil
}

// Like persists a like for a venue. The response body is ignored beyond
// success or failure.
func (c *Client) Like(ctx context.Context, req *chat.ReactionRequest) error {
	return c.postReaction(ctx, "/like", req)
}

// Dislike persists a dislike for a venue.
func (c *Client) Dislike(ctx context.Context, req *chat.ReactionRequest) error {
	return c.postReaction(ctx, "/dislike", req)
}

func (c *Client) postForSuggestions(ctx context.Context, path string, payload any) (*chat.SuggestResponse, error) {
	resp, err := c.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleError(resp)
	}

	var result chat.SuggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *Client) postReaction(ctx context.Context, path string, req *chat.ReactionRequest) error {
	resp, err := c.post(ctx, path, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRequestWithRetry(req, body)
}

// doRequestWithRetry performs an HTTP request with linear-backoff retry.
// Client errors (4xx) are returned to the caller without retrying.
func (c *Client) doRequestWithRetry(req *http.Request, body []byte) (*http.Response, error) {
	var lastErr error

	logger := c.logger.With("method", "doRequestWithRetry", "url", req.URL.String())

	for i := 0; i < c.config.RetryCount; i++ {
		reqCopy := req.Clone(req.Context())
		reqCopy.Body = io.NopCloser(bytes.NewReader(body))

		resp, err := c.httpClient.Do(reqCopy)
		if err != nil {
			lastErr = err
			logger.Debug("request attempt failed", "attempt", i+1, "error", err)
			time.Sleep(c.config.RetryDelay * time.Duration(i+1))
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		logger.Debug("server error, retrying", "attempt", i+1, "status_code", resp.StatusCode)
		time.Sleep(c.config.RetryDelay * time.Duration(i+1))
	}

	logger.Error("request failed after all retries", "retry_count", c.config.RetryCount, "error", lastErr)
	return nil, fmt.Errorf("request failed after %d retries: %w", c.config.RetryCount, lastErr)
}

// handleError processes error responses from the service. The service reports
// errors as a flat {"error": "..."} body.
func (c *Client) handleError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    errResp.Error,
	}
}
