package placesapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwong/tripchat/src/chat"
)

func newTestClient(url string) *Client {
	return NewClient(Config{
		BaseURL:    url,
		RetryCount: 2,
		RetryDelay: time.Millisecond,
	})
}

func TestSuggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "kl", req["city"])
		assert.Equal(t, "attractions", req["category"])
		assert.Equal(t, "temples", req["query"])
		assert.Equal(t, []any{"Batu Caves"}, req["liked"])

		json.NewEncoder(w).Encode(map[string]any{
			"suggestions": []map[string]any{
				{"name": "Thean Hou Temple", "description": "Six-tiered temple", "likes": 12, "relevance": 0.87},
				{"name": "Sri Mahamariamman", "likes": 4},
			},
			"total_results": 5,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Suggest(context.Background(), &chat.SuggestRequest{
		City:     "kl",
		Category: "attractions",
		Query:    "temples",
		Liked:    []string{"Batu Caves"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, "Thean Hou Temple", resp.Suggestions[0].Name)
	assert.Equal(t, 12, resp.Suggestions[0].Likes)
	assert.InDelta(t, 0.87, resp.Suggestions[0].Relevance, 0.001)
	assert.Equal(t, 5, resp.TotalResults)
}

func TestSuggestTextualResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"response":      "Hello! How can I help you find attractions?",
			"suggestions":   []any{},
			"total_results": 0,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Suggest(context.Background(), &chat.SuggestRequest{City: "kl", Category: "attractions", Query: "hi"})
	require.NoError(t, err)

	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, "Hello! How can I help you find attractions?", resp.Response)
}

func TestShowMore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/show_more", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(2), req["offset"])
		assert.Equal(t, float64(2), req["limit"])

		json.NewEncoder(w).Encode(map[string]any{
			"suggestions":   []map[string]any{{"name": "KL Tower"}},
			"total_results": 5,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.ShowMore(context.Background(), &chat.PageRequest{
		City:     "kl",
		Category: "attractions",
		Query:    "temples",
		Offset:   2,
		Limit:    2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "KL Tower", resp.Suggestions[0].Name)
}

func TestReactions(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Batu Caves", req["name"])

		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	req := &chat.ReactionRequest{City: "kl", Category: "attractions", Name: "Batu Caves"}
	require.NoError(t, client.Like(context.Background(), req))
	require.NoError(t, client.Dislike(context.Background(), req))

	assert.Equal(t, []string{"/like", "/dislike"}, paths)
}

func TestServiceErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"error": "No data available for Ipoh hotels."})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Suggest(context.Background(), &chat.SuggestRequest{City: "ipoh", Category: "hotels", Query: "pools"})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "No data available for Ipoh hotels.", apiErr.Message)
	assert.True(t, apiErr.IsNotFound())
	assert.False(t, apiErr.IsRetryable())
}

func TestRetryOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"suggestions":   []map[string]any{{"name": "Batu Caves"}},
			"total_results": 1,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Suggest(context.Background(), &chat.SuggestRequest{City: "kl", Category: "attractions", Query: "caves"})
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	require.Len(t, resp.Suggestions, 1)
}

func TestNoRetryOnClientError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": "Please provide city, category, and query."})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Suggest(context.Background(), &chat.SuggestRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Suggest(context.Background(), &chat.SuggestRequest{City: "kl", Category: "attractions", Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
}
