package newsletter

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
)

const (
	defaultUserAgent = "linkedpost/1.0 (newsletter aggregator; github.com/Tharikabalu/Linkedin-post-automation)"
	defaultTimeout   = 30 * time.Second
)

// Fetcher retrieves newsletter pages and feeds over HTTP. It remembers
// ETag/Last-Modified validators per URL for the lifetime of the process
// and issues conditional requests on refetch.
type Fetcher struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	etag         string
	lastModified string
}

func NewFetcher(cfg config.SourcesConfig) *Fetcher {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		cache:     make(map[string]cacheEntry),
	}
}

// Fetch issues a GET for the given URL. The second return value is
// false when the server reports the content unchanged since the last
// fetch; the caller owns the response body when it is true.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*http.Response, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html, application/rss+xml, application/atom+xml, application/xml, text/xml")

	f.mu.Lock()
	if entry, ok := f.cache[url]; ok {
		if entry.etag != "" {
			req.Header.Set("If-None-Match", entry.etag)
		}
		if entry.lastModified != "" {
			req.Header.Set("If-Modified-Since", entry.lastModified)
		}
	}
	f.mu.Unlock()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode == http.StatusNotModified {
		resp.Body.Close()
		return nil, false, nil
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, false, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	f.remember(url, resp)
	return resp, true, nil
}

func (f *Fetcher) remember(url string, resp *http.Response) {
	entry := cacheEntry{
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
	}
	if entry.etag == "" && entry.lastModified == "" {
		return
	}

	f.mu.Lock()
	f.cache[url] = entry
	f.mu.Unlock()
}
