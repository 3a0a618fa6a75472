package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/compose"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/content"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/linkedin"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/newsletter"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/schedule"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

const newsletterPage = `<!DOCTYPE html>
<html><body>
<article>
  <h2>AI Agents Reshape Software Testing</h2>
  <p class="summary">Teams adopting AI agents for test generation report better coverage and
  faster release cycles. The shift moves machine learning from a research
  curiosity into everyday engineering practice.</p>
  <a href="/the-batch/ai-agents-testing">Read the full story</a>
  <ul>
    <li>Agent-written tests caught regressions human reviewers missed</li>
    <li>Data quality remains the main barrier to wider adoption</li>
  </ul>
</article>
</body></html>`

func setupPipeline(t *testing.T) (*config.Config, *storage.Store) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, newsletterPage)
	}))
	t.Cleanup(server.Close)

	cfg := config.TestConfig()
	cfg.Sources.Feeds = []config.SourceConfig{
		{Name: "the_batch", URL: server.URL, Kind: "html"},
	}

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "pipeline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return cfg, store
}

func TestPipeline_FetchToPublished(t *testing.T) {
	cfg, store := setupPipeline(t)

	// fetch
	manager := newsletter.NewManager(store, cfg)
	manager.SetPermissiveValidation(true)
	raw, err := manager.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, raw, 1)

	// process
	processor := content.NewProcessor(cfg.Content)
	processed := processor.FilterByQuality(processor.Process(raw), cfg.Content.MinContentScore)
	require.Len(t, processed, 1)
	require.NoError(t, store.SaveProcessedArticles(processed))

	article := processed[0]
	assert.GreaterOrEqual(t, article.ContentScore, cfg.Content.MinContentScore)
	assert.NotEmpty(t, article.Hashtags)
	assert.Len(t, article.KeyInsights, 2)

	// compose
	composer := compose.NewComposer(cfg, nil)
	posts := composer.ComposeAll(processed, cfg.Posts.MaxPosts)
	require.Len(t, posts, 1)
	require.NoError(t, store.SavePosts(posts))

	post := posts[0]
	assert.GreaterOrEqual(t, post.Length, cfg.Content.MinPostLength)
	assert.LessOrEqual(t, post.Length, cfg.Content.MaxPostLength)
	assert.NotContains(t, post.Content, "{title}")
	assert.Contains(t, post.Content, "AI Agents Reshape Software Testing")

	// schedule against the dry-run publisher
	engine, err := schedule.NewEngine(store, linkedin.NewPoster(cfg.LinkedIn), cfg.Schedule)
	require.NoError(t, err)

	scheduled := engine.Schedule(posts, schedule.Options{})
	require.Len(t, scheduled, 1)
	assert.True(t, scheduled[0].ScheduledTime.After(time.Now()))

	// run the loop until the slot fires
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx)
	defer engine.Stop()

	// nothing is due yet, so the entry stays scheduled
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, engine.ScheduledPosts(storage.StatusScheduled), 1)
}

func TestPipeline_SurvivesRestart(t *testing.T) {
	cfg, store := setupPipeline(t)

	manager := newsletter.NewManager(store, cfg)
	manager.SetPermissiveValidation(true)
	raw, err := manager.FetchAll(context.Background())
	require.NoError(t, err)

	processor := content.NewProcessor(cfg.Content)
	processed := processor.FilterByQuality(processor.Process(raw), cfg.Content.MinContentScore)

	composer := compose.NewComposer(cfg, nil)
	posts := composer.ComposeAll(processed, cfg.Posts.MaxPosts)

	engine, err := schedule.NewEngine(store, linkedin.DryRunPoster{}, cfg.Schedule)
	require.NoError(t, err)
	scheduled := engine.Schedule(posts, schedule.Options{})
	require.NotEmpty(t, scheduled)

	// a fresh engine over the same store sees the pending entries
	reloaded, err := schedule.NewEngine(store, linkedin.DryRunPoster{}, cfg.Schedule)
	require.NoError(t, err)

	pending := reloaded.ScheduledPosts(storage.StatusScheduled)
	require.Len(t, pending, len(scheduled))
	assert.Equal(t, scheduled[0].PostID, pending[0].PostID)
	assert.True(t, strings.HasPrefix(pending[0].PostID, "post_"))
}
