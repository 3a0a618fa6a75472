package newsletter

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/validation"
)

const defaultMaxArticles = 10

// Manager coordinates fetching from all configured newsletter sources
// and persists the results.
type Manager struct {
	store        *storage.Store
	fetcher      *Fetcher
	feedParser   *FeedParser
	scraper      *Scraper
	urlValidator *validation.SourceURLValidator
	cfg          *config.Config
}

func NewManager(store *storage.Store, cfg *config.Config) *Manager {
	return &Manager{
		store:        store,
		fetcher:      NewFetcher(cfg.Sources),
		feedParser:   NewFeedParser(),
		scraper:      NewScraper(),
		urlValidator: validation.NewSourceURLValidator(),
		cfg:          cfg,
	}
}

// SetPermissiveValidation enables permissive URL validation for
// development and testing.
func (m *Manager) SetPermissiveValidation(permissive bool) {
	if permissive {
		m.urlValidator = validation.NewPermissiveSourceURLValidator()
	} else {
		m.urlValidator = validation.NewSourceURLValidator()
	}
}

// FetchAll pulls articles from every configured source, newest first,
// and saves them. A failing source is logged and skipped; the error
// return covers persistence only.
func (m *Manager) FetchAll(ctx context.Context) ([]storage.RawArticle, error) {
	var all []storage.RawArticle

	for _, src := range m.cfg.Sources.Feeds {
		articles, err := m.fetchSource(ctx, src)
		if err != nil {
			debuglog.Errorf("fetching source %s: %v", src.Name, err)
			continue
		}
		debuglog.Infof("fetched %d articles from %s", len(articles), src.Name)
		all = append(all, articles...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date > all[j].Date
	})

	if len(all) > 0 {
		if err := m.store.SaveRawArticles(all); err != nil {
			return all, fmt.Errorf("saving articles: %w", err)
		}
	}

	debuglog.Infof("total articles fetched: %d", len(all))
	return all, nil
}

func (m *Manager) fetchSource(ctx context.Context, src config.SourceConfig) ([]storage.RawArticle, error) {
	normalized, err := m.urlValidator.ValidateAndNormalize(src.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	resp, updated, err := m.fetcher.Fetch(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !updated {
		debuglog.Debugf("source %s not modified, skipping", src.Name)
		return nil, nil
	}
	defer resp.Body.Close()

	max := m.cfg.Sources.MaxArticles
	if max <= 0 {
		max = defaultMaxArticles
	}
	now := time.Now()

	switch src.Kind {
	case "rss":
		articles, err := m.feedParser.Parse(resp.Body, src.Name, now)
		if err != nil {
			return nil, err
		}
		if len(articles) > max {
			articles = articles[:max]
		}
		return articles, nil
	case "html", "":
		base, err := url.Parse(normalized)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
		return m.scraper.Parse(resp.Body, base, src.Name, max, now)
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}
