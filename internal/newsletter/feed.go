package newsletter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

// FeedParser turns RSS/Atom feed XML into raw articles.
type FeedParser struct {
	parser *gofeed.Parser
}

func NewFeedParser() *FeedParser {
	return &FeedParser{parser: gofeed.NewParser()}
}

func (p *FeedParser) Parse(reader io.Reader, source string, now time.Time) ([]storage.RawArticle, error) {
	feed, err := p.parser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	articles := make([]storage.RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		article := storage.RawArticle{
			ID:        articleID(source, item.Link),
			Title:     item.Title,
			Summary:   itemSummary(item),
			Link:      item.Link,
			Source:    source,
			Date:      itemDate(item),
			ScrapedAt: now,
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func itemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

func itemDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format(time.RFC3339)
	}
	return item.Published
}

func articleID(source, link string) string {
	return fmt.Sprintf("%s:%x", source, sha256.Sum256([]byte(link)))
}
