package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Entry is one template listed in the registry index.
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Registry returns the current template index.
type Registry interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

// HTTPRegistry fetches the index as a JSON array from a fixed URL.
type HTTPRegistry struct {
	URL       string
	Client    *http.Client
	UserAgent string
}

// NewHTTPRegistry returns a registry client for url with a bounded timeout.
func NewHTTPRegistry(url string) *HTTPRegistry {
	return &HTTPRegistry{
		URL:       url,
		Client:    &http.Client{Timeout: 30 * time.Second},
		UserAgent: "kff",
	}
}

// Fetch downloads and decodes the index. Every failure wraps
// ErrRegistryUnavailable.
func (r *HTTPRegistry) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrRegistryUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrRegistryUnavailable, r.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrRegistryUnavailable, err)
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing registry JSON: %w", ErrRegistryUnavailable, err)
	}
	return entries, nil
}

// Lookup returns the first entry named name. Matching is case-sensitive.
func Lookup(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
