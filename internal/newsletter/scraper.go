package newsletter

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

// Selector cascade for article containers. The first selector that
// matches anything wins.
var articleSelectors = []string{
	"article",
	".post",
	".article",
	".entry",
	"[class*='post']",
	"[class*='article']",
}

var insightSelectors = []string{
	"ul li",
	"ol li",
	"[class*='insight']",
	"[class*='key']",
	"[class*='takeaway']",
	"strong",
	"b",
}

// Keywords a scraped article must mention to be kept.
var includeKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "deep learning",
	"data science", "neural", "model", "llm",
}

// Scraper extracts articles from newsletter HTML pages.
type Scraper struct{}

func NewScraper() *Scraper {
	return &Scraper{}
}

// Parse scrapes up to max articles from the page at base. Articles
// without a title and link, and articles matching none of the topic
// keywords, are dropped.
func (s *Scraper) Parse(reader io.Reader, base *url.URL, source string, max int, now time.Time) ([]storage.RawArticle, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	var elements *goquery.Selection
	for _, selector := range articleSelectors {
		found := doc.Find(selector)
		if found.Length() > 0 {
			elements = found
			break
		}
	}

	if elements == nil || elements.Length() == 0 {
		return s.parseLinks(doc, base, source, max, now), nil
	}

	var articles []storage.RawArticle
	elements.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		article, ok := s.extractArticle(el, base, source, now)
		if !ok {
			return true
		}
		if !relevantContent(article.Title, article.Summary) {
			debuglog.Debugf("skipping off-topic article: %s", article.Title)
			return true
		}
		articles = append(articles, article)
		return len(articles) < max
	})

	return articles, nil
}

// parseLinks is the last-resort strategy for pages without recognizable
// article markup: every distinct anchor with text becomes a bare
// article carrying only title and link.
func (s *Scraper) parseLinks(doc *goquery.Document, base *url.URL, source string, max int, now time.Time) []storage.RawArticle {
	var articles []storage.RawArticle
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		text := strings.TrimSpace(a.Text())
		if href == "" || text == "" || seen[href] {
			return true
		}
		seen[href] = true

		link := resolveLink(base, href)
		articles = append(articles, storage.RawArticle{
			ID:        articleID(source, link),
			Title:     text,
			Link:      link,
			Source:    source,
			ScrapedAt: now,
		})
		return len(articles) < max
	})

	if len(articles) > 0 {
		debuglog.Debugf("fell back to link discovery for %s (%d links)", source, len(articles))
	}
	return articles
}

func (s *Scraper) extractArticle(el *goquery.Selection, base *url.URL, source string, now time.Time) (storage.RawArticle, bool) {
	link := el.Find("a[href]").First()

	title := strings.TrimSpace(el.Find("h1, h2, h3, h4").First().Text())
	if title == "" {
		title = strings.TrimSpace(link.Text())
	}

	summary := strings.TrimSpace(el.Find("[class*='summary'], [class*='description'], [class*='excerpt']").First().Text())
	if summary == "" {
		summary = strings.TrimSpace(el.Find("p").First().Text())
	}

	href, _ := link.Attr("href")
	date := strings.TrimSpace(el.Find("time, [class*='date'], [class*='time']").First().Text())

	if title == "" || href == "" {
		return storage.RawArticle{}, false
	}

	resolved := resolveLink(base, href)
	return storage.RawArticle{
		ID:        articleID(source, resolved),
		Title:     title,
		Summary:   summary,
		Insights:  extractInsights(el),
		Link:      resolved,
		Source:    source,
		Date:      date,
		ScrapedAt: now,
	}, true
}

// extractInsights collects bullet points and highlighted fragments of
// plausible length, capped at 5.
func extractInsights(el *goquery.Selection) []string {
	var insights []string
	seen := make(map[string]bool)

	for _, selector := range insightSelectors {
		el.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) <= 10 || len(text) >= 200 || seen[text] {
				return
			}
			seen[text] = true
			insights = append(insights, text)
		})
	}

	if len(insights) > 5 {
		insights = insights[:5]
	}
	return insights
}

func relevantContent(title, summary string) bool {
	text := strings.ToLower(title + " " + summary)
	for _, keyword := range includeKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
