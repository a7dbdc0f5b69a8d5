package router

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"lumincoin/internal/cache"
)

// Fetcher loads templates by reference, e.g. "/templates/layout.html".
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (string, error)
}

// FSFetcher reads templates from a file system rooted at "/".
type FSFetcher struct {
	fsys fs.FS
}

func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

func (f *FSFetcher) Fetch(_ context.Context, ref string) (string, error) {
	data, err := fs.ReadFile(f.fsys, strings.TrimPrefix(ref, "/"))
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", ref, err)
	}
	return string(data), nil
}

// HTTPFetcher downloads templates relative to a base URL.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+ref, nil)
	if err != nil {
		return "", fmt.Errorf("create template request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch template %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch template %s: status %d", ref, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", ref, err)
	}
	return string(data), nil
}

// CachedFetcher keeps fetched templates in a cache. Failures are not cached.
type CachedFetcher struct {
	next  Fetcher
	cache cache.Cache[string]
}

func NewCachedFetcher(next Fetcher, c cache.Cache[string]) *CachedFetcher {
	return &CachedFetcher{next: next, cache: c}
}

func (f *CachedFetcher) Fetch(ctx context.Context, ref string) (string, error) {
	if html, ok := f.cache.Get(ref); ok {
		return html, nil
	}
	html, err := f.next.Fetch(ctx, ref)
	if err != nil {
		return "", err
	}
	f.cache.Set(ref, html)
	return html, nil
}
