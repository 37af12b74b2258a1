package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/budgetring/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// HTTPDoer is the subset of *http.Client used by HTTPSource.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource GETs a budget document from a URL.
type HTTPSource struct {
	url     string
	http    HTTPDoer
	Timeout time.Duration
}

// NewHTTPSource builds a source for location. A location without a path gets
// opts.Path (or DefaultPath) appended.
func NewHTTPSource(location string, opts Options) *HTTPSource {
	doer := opts.HTTPClient
	if doer == nil {
		doer = &http.Client{}
	}
	return &HTTPSource{
		url:     resolveURL(location, opts.Path),
		http:    doer,
		Timeout: requestTimeout,
	}
}

func resolveURL(location, path string) string {
	if path == "" {
		path = DefaultPath
	}
	u, err := url.Parse(location)
	if err != nil || (u.Path != "" && u.Path != "/") {
		return location
	}
	return strings.TrimRight(location, "/") + "/" + strings.TrimLeft(path, "/")
}

// URL returns the resolved resource URL.
func (s *HTTPSource) URL() string {
	return s.url
}

func (s *HTTPSource) String() string {
	return s.url
}

// Fetch performs one GET and decodes the response.
func (s *HTTPSource) Fetch(ctx context.Context) ([]model.CategoryDatum, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/budgetring/1.0")

	//nolint:gosec // URL comes from user configuration
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrFetch, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrFetch, maxBodySize)
	}
	return Decode(body)
}
