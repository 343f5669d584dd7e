// Package webpreview fetches a venue's website or reviews page and renders it
// for terminal display, so a suggestion can be inspected without leaving the
// conversation.
package webpreview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

const (
	// FormatText extracts readable text from HTML pages.
	FormatText = "text"
	// FormatMarkdown converts HTML pages to markdown.
	FormatMarkdown = "markdown"
	// FormatHTML returns the raw body.
	FormatHTML = "html"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 5 * 1024 * 1024 // 5MB
	maxRedirects   = 10
)

// Preview is a fetched page rendered in the requested format.
type Preview struct {
	Content     string
	StatusCode  int
	ContentType string
	URL         string
}

// Fetcher retrieves venue pages.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given timeout; zero means the default.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Fetch downloads rawURL and renders it in the requested format.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, format string) (*Preview, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("url is required")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("url must start with http:// or https://")
	}

	format = strings.ToLower(format)
	switch format {
	case FormatText, FormatMarkdown, FormatHTML:
	case "":
		format = FormatText
	default:
		return nil, fmt.Errorf("format must be one of: text, markdown, html")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "tripchat/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	content := string(body)
	contentType := resp.Header.Get("Content-Type")
	isHTML := strings.Contains(contentType, "text/html")

	var rendered string
	switch format {
	case FormatText:
		if isHTML {
			if text, err := extractTextFromHTML(content); err == nil {
				rendered = text
			} else {
				rendered = content
			}
		} else {
			rendered = content
		}

	case FormatMarkdown:
		if isHTML {
			if markdown, err := convertHTMLToMarkdown(content); err == nil {
				rendered = markdown
			} else {
				rendered = "```html\n" + content + "\n```"
			}
		} else {
			rendered = "```\n" + content + "\n```"
		}

	case FormatHTML:
		rendered = content
	}

	return &Preview{
		Content:     rendered,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		URL:         resp.Request.URL.String(),
	}, nil
}

// extractTextFromHTML extracts plain text from HTML content
func extractTextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := doc.Text()

	lines := strings.Split(text, "\n")
	var cleanedLines []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			cleanedLines = append(cleanedLines, trimmed)
		}
	}

	return strings.Join(cleanedLines, "\n"), nil
}

// convertHTMLToMarkdown converts HTML content to Markdown
func convertHTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	markdown = strings.TrimSpace(markdown)
	markdown = strings.ReplaceAll(markdown, "\n\n\n", "\n\n")

	return markdown, nil
}
