package newsletter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
)

func TestFetcher_SetsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		io.WriteString(w, "<html></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(config.TestConfig().Sources)
	resp, updated, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.True(t, updated)
	resp.Body.Close()

	assert.Equal(t, "linkedpost-test/1.0", gotUA)
	assert.Contains(t, gotAccept, "text/html")
	assert.Contains(t, gotAccept, "application/rss+xml")
}

func TestFetcher_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(config.TestConfig().Sources)
	_, _, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_ConditionalGet(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		io.WriteString(w, "<html></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(config.TestConfig().Sources)

	resp, updated, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.True(t, updated)
	resp.Body.Close()

	_, updated, err = fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Equal(t, 2, requests)
}

func TestFetcher_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Second)
		io.WriteString(w, "too late")
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	fetcher := NewFetcher(config.TestConfig().Sources)
	_, _, err := fetcher.Fetch(ctx, server.URL)
	assert.Error(t, err)
}

func TestFetcher_Defaults(t *testing.T) {
	fetcher := NewFetcher(config.SourcesConfig{})
	assert.Equal(t, defaultUserAgent, fetcher.userAgent)
	assert.Equal(t, defaultTimeout, fetcher.client.Timeout)
}
