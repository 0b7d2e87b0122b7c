// Package assets loads raster text, GeoJSON and shapefile bundles from
// URLs or local paths. Nothing is cached between sessions.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// UserAgent is sent with every HTTP request.
const UserAgent = "Mozilla/5.0 (compatible; asciiglobe/1.0)"

// FetchError reports a failed asset load. Status is the HTTP status code
// when the server answered with something other than 200.
type FetchError struct {
	Asset  string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	name := e.URL
	if e.Asset != "" {
		name = e.Asset + " (" + e.URL + ")"
	}
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", name, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", name, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Source returns the raw bytes behind an asset reference.
type Source interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Fetcher reads http(s) URLs over the network and anything else from the
// local filesystem.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher creates a fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 60 * time.Second}}
}

// Fetch loads ref. Failures are returned as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if !isRemote(ref) {
		data, err := os.ReadFile(strings.TrimPrefix(ref, "file://"))
		if err != nil {
			return nil, &FetchError{URL: ref, Err: err}
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, &FetchError{URL: ref, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", UserAgent)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: ref, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: ref, Status: resp.StatusCode, Err: fmt.Errorf("%s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: ref, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return data, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
