package newsletter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

func testManager(t *testing.T, cfg *config.Config) (*Manager, *storage.Store) {
	t.Helper()

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	manager := NewManager(store, cfg)
	manager.SetPermissiveValidation(true)
	return manager, store
}

func TestNewManager(t *testing.T) {
	manager, store := testManager(t, config.TestConfig())

	assert.NotNil(t, manager.fetcher)
	assert.NotNil(t, manager.feedParser)
	assert.NotNil(t, manager.scraper)
	assert.Equal(t, store, manager.store)
}

func TestFetchAll_MixedSources(t *testing.T) {
	htmlServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, batchPageHTML)
	}))
	defer htmlServer.Close()

	rssServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, sampleRSS)
	}))
	defer rssServer.Close()

	cfg := config.TestConfig()
	cfg.Sources.Feeds = []config.SourceConfig{
		{Name: "the_batch", URL: htmlServer.URL, Kind: "html"},
		{Name: "data_points", URL: rssServer.URL, Kind: "rss"},
	}

	manager, store := testManager(t, cfg)

	articles, err := manager.FetchAll(context.Background())
	require.NoError(t, err)

	// 1 scraped article passes the keyword filter, 2 feed items carry links
	require.Len(t, articles, 3)

	persisted, err := store.RawArticles()
	require.NoError(t, err)
	assert.Len(t, persisted, 3)

	sources := map[string]int{}
	for _, a := range articles {
		sources[a.Source]++
	}
	assert.Equal(t, 1, sources["the_batch"])
	assert.Equal(t, 2, sources["data_points"])
}

func TestFetchAll_FailingSourceSkipped(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, sampleRSS)
	}))
	defer okServer.Close()

	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer badServer.Close()

	cfg := config.TestConfig()
	cfg.Sources.Feeds = []config.SourceConfig{
		{Name: "broken", URL: badServer.URL, Kind: "rss"},
		{Name: "data_points", URL: okServer.URL, Kind: "rss"},
	}

	manager, _ := testManager(t, cfg)

	articles, err := manager.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestFetchAll_InvalidURLSkipped(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Sources.Feeds = []config.SourceConfig{
		{Name: "bad", URL: "ftp://nope", Kind: "rss"},
	}

	manager, _ := testManager(t, cfg)

	articles, err := manager.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestFetchAll_RespectsMaxArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, sampleRSS)
	}))
	defer server.Close()

	cfg := config.TestConfig()
	cfg.Sources.MaxArticles = 1
	cfg.Sources.Feeds = []config.SourceConfig{
		{Name: "data_points", URL: server.URL, Kind: "rss"},
	}

	manager, _ := testManager(t, cfg)

	articles, err := manager.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestFetchSource_UnknownKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "irrelevant")
	}))
	defer server.Close()

	manager, _ := testManager(t, config.TestConfig())

	_, err := manager.fetchSource(context.Background(), config.SourceConfig{
		Name: "weird", URL: server.URL, Kind: "carrier-pigeon",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source kind")
}
