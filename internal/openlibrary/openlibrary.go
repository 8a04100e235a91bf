// Package openlibrary is a client for the Open Library search API.
package openlibrary

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to an Open Library compatible server.
type Client struct {
	parsedURL  *url.URL
	httpClient *http.Client
	timeout    time.Duration
}

// New creates a client for the given base URL, e.g. "https://openlibrary.org".
// The timeout bounds each individual request attempt.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse openlibrary url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("openlibrary url %q is missing scheme or host", baseURL)
	}

	return &Client{
		parsedURL:  parsed,
		httpClient: &http.Client{},
		timeout:    timeout,
	}, nil
}

// resolveURL builds a full URL from the base URL and the given path segments.
// If the last segment contains a query string (e.g. "search.json?title=dune"),
// it is split so JoinPath only receives the path portion.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := c.parsedURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}
