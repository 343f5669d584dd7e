package webpreview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const venuePage = `<!DOCTYPE html>
<html>
<head>
    <title>Batu Caves</title>
</head>
<body>
    <h1>Batu Caves</h1>
    <p>A limestone hill with a series of <strong>cave temples</strong>.</p>
    <script>console.log("tracking");</script>
    <style>.hero { color: gold; }</style>
</body>
</html>`

func newVenueServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(venuePage))
	}))
}

func TestFetchFormats(t *testing.T) {
	server := newVenueServer()
	defer server.Close()

	fetcher := NewFetcher(0)

	tests := []struct {
		name       string
		format     string
		expectFunc func(t *testing.T, preview *Preview)
	}{
		{
			name:   "text format",
			format: FormatText,
			expectFunc: func(t *testing.T, preview *Preview) {
				assert.Contains(t, preview.Content, "Batu Caves")
				assert.Contains(t, preview.Content, "cave temples")
				assert.NotContains(t, preview.Content, "console.log")
				assert.NotContains(t, preview.Content, "color: gold")
			},
		},
		{
			name:   "markdown format",
			format: FormatMarkdown,
			expectFunc: func(t *testing.T, preview *Preview) {
				assert.Contains(t, preview.Content, "# Batu Caves")
				assert.Contains(t, preview.Content, "**cave temples**")
			},
		},
		{
			name:   "html format",
			format: FormatHTML,
			expectFunc: func(t *testing.T, preview *Preview) {
				assert.Contains(t, preview.Content, "<!DOCTYPE html>")
				assert.Contains(t, preview.Content, "<h1>Batu Caves</h1>")
			},
		},
		{
			name:   "empty format defaults to text",
			format: "",
			expectFunc: func(t *testing.T, preview *Preview) {
				assert.Contains(t, preview.Content, "Batu Caves")
				assert.NotContains(t, preview.Content, "<h1>")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, err := fetcher.Fetch(context.Background(), server.URL, tt.format)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, preview.StatusCode)
			assert.Contains(t, preview.ContentType, "text/html")
			tt.expectFunc(t, preview)
		})
	}
}

func TestFetchValidation(t *testing.T) {
	fetcher := NewFetcher(0)

	_, err := fetcher.Fetch(context.Background(), "", FormatText)
	assert.Error(t, err)

	_, err = fetcher.Fetch(context.Background(), "ftp://example.com", FormatText)
	assert.Error(t, err)

	_, err = fetcher.Fetch(context.Background(), "http://example.com", "pdf")
	assert.Error(t, err)
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(0)
	_, err := fetcher.Fetch(context.Background(), server.URL, FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("opening hours: 6am-9pm"))
	}))
	defer server.Close()

	fetcher := NewFetcher(0)
	preview, err := fetcher.Fetch(context.Background(), server.URL, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "opening hours: 6am-9pm", preview.Content)
}
