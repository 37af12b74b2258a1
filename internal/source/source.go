// Package source fetches budget category lists from HTTP or local JSON documents.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/budgetring/internal/model"
)

// DefaultPath is the resource fetched relative to an HTTP base URL.
const DefaultPath = "/budget_data.json"

// ErrFetch indicates the source was unreachable or returned malformed content.
var ErrFetch = errors.New("source: fetch failed")

// Loader reads one category list per call.
type Loader interface {
	Fetch(ctx context.Context) ([]model.CategoryDatum, error)
	String() string
}

// Options tune a loader built by New.
type Options struct {
	// Path is appended to HTTP base URLs that carry no path of their own.
	Path string
	// HTTPClient overrides the default client for HTTP sources.
	HTTPClient HTTPDoer
}

// New picks an HTTP source for http(s) locations and a file source otherwise.
func New(location string, opts Options) (Loader, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty source location", ErrFetch)
	}
	if IsHTTP(location) {
		return NewHTTPSource(location, opts), nil
	}
	return NewFileSource(location), nil
}

// IsHTTP reports whether location names an HTTP resource.
func IsHTTP(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// rawDocument keeps myBudget as a pointer so a missing field is distinguishable
// from an empty list.
type rawDocument struct {
	MyBudget *[]rawDatum `json:"myBudget"`
}

type rawDatum struct {
	Title  string          `json:"title"`
	Budget json.RawMessage `json:"budget"`
}

// Decode parses a budget document. Budget values are not range checked here;
// negative amounts are rejected by the layout.
func Decode(body []byte) ([]model.CategoryDatum, error) {
	var doc rawDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing document: %w", ErrFetch, err)
	}
	if doc.MyBudget == nil {
		return nil, fmt.Errorf("%w: document has no myBudget field", ErrFetch)
	}

	out := make([]model.CategoryDatum, 0, len(*doc.MyBudget))
	for i, r := range *doc.MyBudget {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: entry %d has no title", ErrFetch, i)
		}
		budget, ok := parseBudget(r.Budget)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d (%q) has unreadable budget %s", ErrFetch, i, title, string(r.Budget))
		}
		out = append(out, model.CategoryDatum{Title: title, Budget: budget})
	}
	return out, nil
}

// parseBudget accepts a JSON number or a numeric string ("25", "$25.50").
func parseBudget(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", "")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
