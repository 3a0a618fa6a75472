package compose

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

var (
	blankLines      = regexp.MustCompile(`\n\s*\n`)
	spaceRun        = regexp.MustCompile(` +`)
	spaceBeforePunc = regexp.MustCompile(` +([.,!?;:])`)
	repeatedPunc    = regexp.MustCompile(`([.,!?;:]) *[.,!?;:]`)
	emojiSet        = regexp.MustCompile(`[🎯📊🤖💡🚀⚡🔗📖🔍]`)
)

var placeholders = []string{"{title}", "{summary}", "{insights}", "{link}", "{hashtags}"}

var ctaWords = []string{"read", "learn", "discover", "explore", "check"}

// Composer renders processed articles into posts using a configured
// template list. The random source is injected so tests can force a
// deterministic template choice.
type Composer struct {
	templates []string
	content   config.ContentConfig
	rng       *rand.Rand
	now       func() time.Time
	seq       int
}

func NewComposer(cfg *config.Config, rng *rand.Rand) *Composer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{
		templates: cfg.Posts.Templates,
		content:   cfg.Content,
		rng:       rng,
		now:       time.Now,
	}
}

// ComposeAll renders up to maxPosts posts from the given articles.
// Articles whose rendered post fails validation are logged and skipped.
func (c *Composer) ComposeAll(articles []storage.ProcessedArticle, maxPosts int) []storage.Post {
	if maxPosts <= 0 || maxPosts > len(articles) {
		maxPosts = len(articles)
	}

	posts := make([]storage.Post, 0, maxPosts)
	for _, article := range articles[:maxPosts] {
		post, err := c.Compose(article)
		if err != nil {
			debuglog.Warnf("skipping post for %q: %v", article.Title, err)
			continue
		}
		posts = append(posts, *post)
	}

	debuglog.Infof("composed %d posts", len(posts))
	return posts
}

// Compose renders a single post from a processed article.
func (c *Composer) Compose(article storage.ProcessedArticle) (*storage.Post, error) {
	template := c.selectTemplate()

	content := fillTemplate(template,
		article.Title,
		article.Summary,
		FormatInsights(article.KeyInsights),
		article.Link,
		FormatHashtags(article.Hashtags),
	)
	content = normalizeContent(content)

	if err := c.validate(content); err != nil {
		return nil, err
	}

	now := c.now()
	c.seq++
	return &storage.Post{
		ID:              fmt.Sprintf("gen_%s_%d", now.Format("20060102_150405"), c.seq),
		Content:         content,
		Article:         article,
		Template:        template,
		Length:          len(content),
		HashtagCount:    len(article.Hashtags),
		EngagementScore: c.engagementScore(content, article),
		GeneratedAt:     now,
	}, nil
}

// ComposeCustom renders a post from caller-supplied fields, bypassing the
// processing stage. An empty template selects one at random.
func (c *Composer) ComposeCustom(title, summary string, insights []string, link string, hashtags []string, template string) (*storage.Post, error) {
	if template == "" {
		template = c.selectTemplate()
	}

	content := fillTemplate(template,
		title,
		summary,
		FormatInsights(insights),
		link,
		FormatHashtags(hashtags),
	)
	content = normalizeContent(content)

	if err := c.validate(content); err != nil {
		return nil, err
	}

	now := c.now()
	c.seq++
	return &storage.Post{
		ID:           fmt.Sprintf("custom_%s_%d", now.Format("20060102_150405"), c.seq),
		Content:      content,
		Template:     template,
		Length:       len(content),
		HashtagCount: len(hashtags),
		GeneratedAt:  now,
		Custom:       true,
	}, nil
}

func (c *Composer) selectTemplate() string {
	if len(c.templates) == 0 {
		return FallbackTemplate
	}
	return c.templates[c.rng.Intn(len(c.templates))]
}

func fillTemplate(template, title, summary, insights, link, hashtags string) string {
	replacer := strings.NewReplacer(
		"{title}", title,
		"{summary}", summary,
		"{insights}", insights,
		"{link}", link,
		"{hashtags}", hashtags,
	)
	return replacer.Replace(template)
}

// FormatInsights renders insights as bullet lines, truncating entries
// longer than 100 characters.
func FormatInsights(insights []string) string {
	if len(insights) == 0 {
		return "• No specific insights available"
	}

	if len(insights) > 3 {
		insights = insights[:3]
	}

	lines := make([]string, 0, len(insights))
	for _, insight := range insights {
		insight = strings.TrimSpace(insight)
		if runes := []rune(insight); len(runes) > 100 {
			insight = string(runes[:97]) + "..."
		}
		lines = append(lines, "• "+insight)
	}
	return strings.Join(lines, "\n")
}

// FormatHashtags joins hashtags with spaces, prefixing # where missing.
func FormatHashtags(hashtags []string) string {
	if len(hashtags) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(hashtags))
	for _, tag := range hashtags {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		formatted = append(formatted, tag)
	}
	return strings.Join(formatted, " ")
}

func normalizeContent(content string) string {
	content = blankLines.ReplaceAllString(content, "\n\n")
	content = spaceRun.ReplaceAllString(content, " ")
	content = spaceBeforePunc.ReplaceAllString(content, "$1")
	content = repeatedPunc.ReplaceAllString(content, "$1")
	return strings.TrimSpace(content)
}

func (c *Composer) validate(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("post is empty")
	}

	min, max := c.content.MinPostLength, c.content.MaxPostLength
	if min <= 0 {
		min = 100
	}
	if max <= 0 {
		max = 1300
	}
	if len(content) < min {
		return fmt.Errorf("post too short: %d characters (min %d)", len(content), min)
	}
	if len(content) > max {
		return fmt.Errorf("post too long: %d characters (max %d)", len(content), max)
	}

	for _, placeholder := range placeholders {
		if strings.Contains(content, placeholder) {
			return fmt.Errorf("post contains unresolved placeholder %s", placeholder)
		}
	}
	return nil
}

// engagementScore predicts post performance from simple surface signals:
// length band, hashtag count, emoji presence, a question, a call to
// action, and the article's own content score.
func (c *Composer) engagementScore(content string, article storage.ProcessedArticle) float64 {
	score := 0.0

	length := len(content)
	switch {
	case length >= 800 && length <= 1300:
		score += 0.3
	case length >= 500 && length <= 1500:
		score += 0.2
	}

	hashtagCount := len(article.Hashtags)
	switch {
	case hashtagCount >= 3 && hashtagCount <= 5:
		score += 0.2
	case hashtagCount >= 1 && hashtagCount <= 7:
		score += 0.1
	}

	if n := len(emojiSet.FindAllString(content, -1)); n >= 1 && n <= 5 {
		score += 0.1
	}

	if strings.Contains(content, "?") {
		score += 0.1
	}

	lower := strings.ToLower(content)
	for _, word := range ctaWords {
		if strings.Contains(lower, word) {
			score += 0.1
			break
		}
	}

	score += 0.2 * article.ContentScore

	if score > 1.0 {
		score = 1.0
	}
	return score
}
