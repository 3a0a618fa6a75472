package content

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

// Minimum combined title+summary length below which an article is treated
// as degenerate and skipped.
const minContentLength = 50

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	disallowedChars = regexp.MustCompile(`[^\w\s\-.,!?;:()]`)
	spaceBeforePunc = regexp.MustCompile(`\s+([.,!?;:])`)
	repeatedPunc    = regexp.MustCompile(`([.,!?;:])\s*[.,!?;:]`)
	sentenceEnd     = regexp.MustCompile(`[.!?]+\s+`)
)

// Keywords that mark a summary sentence as information-dense enough to
// serve as a derived insight.
var insightKeywords = []string{"AI", "machine learning", "deep learning", "data", "model", "algorithm"}

// Keywords counted towards the relevance portion of the content score.
var relevanceKeywords = []string{"ai", "machine learning", "deep learning", "artificial intelligence", "data science"}

// topicHashtags maps lowercase trigger substrings to a hashtag. Order
// matters: first-seen order is preserved in the generated list.
var topicHashtags = []struct {
	triggers []string
	tag      string
}{
	{[]string{"ai", "artificial intelligence"}, "#ArtificialIntelligence"},
	{[]string{"machine learning", "ml"}, "#MachineLearning"},
	{[]string{"deep learning", "neural network"}, "#DeepLearning"},
	{[]string{"data science", "data scientist"}, "#DataScience"},
	{[]string{"nlp", "natural language"}, "#NLP"},
	{[]string{"computer vision", "cv"}, "#ComputerVision"},
	{[]string{"robotics", "robot"}, "#Robotics"},
	{[]string{"startup", "entrepreneur"}, "#Startup"},
	{[]string{"tech", "technology"}, "#Tech"},
}

// Processor cleans raw newsletter articles, derives insights and hashtags,
// and computes a content quality score. Stateless per call.
type Processor struct {
	cfg config.ContentConfig
	now func() time.Time
}

func NewProcessor(cfg config.ContentConfig) *Processor {
	return &Processor{cfg: cfg, now: time.Now}
}

// Process runs every article through the cleaning pipeline. Articles that
// fail validation are logged and skipped; the batch never aborts.
func (p *Processor) Process(articles []storage.RawArticle) []storage.ProcessedArticle {
	processed := make([]storage.ProcessedArticle, 0, len(articles))

	for _, article := range articles {
		result, err := p.ProcessOne(article)
		if err != nil {
			debuglog.Warnf("skipping article %q: %v", article.Title, err)
			continue
		}
		processed = append(processed, result)
	}

	debuglog.Infof("processed %d of %d articles", len(processed), len(articles))
	return processed
}

// ProcessOne cleans and scores a single article.
func (p *Processor) ProcessOne(article storage.RawArticle) (storage.ProcessedArticle, error) {
	title := CleanText(article.Title)
	summary := CleanText(article.Summary)

	total := len(title) + len(summary)
	if total < minContentLength {
		return storage.ProcessedArticle{}, fmt.Errorf("content too short (%d chars)", total)
	}
	if maxLen := p.maxPostLength(); total > maxLen {
		return storage.ProcessedArticle{}, fmt.Errorf("content too long (%d chars, max %d)", total, maxLen)
	}

	insights := p.extractKeyInsights(summary, article.Insights)
	hashtags := p.GenerateHashtags(title, summary)

	id := article.ID
	if id == "" {
		id = fingerprint(article.Link + article.Title)
	}

	return storage.ProcessedArticle{
		ID:           id,
		Article:      article,
		Title:        title,
		Summary:      summary,
		KeyInsights:  insights,
		Hashtags:     hashtags,
		Link:         article.Link,
		Source:       article.Source,
		ContentScore: p.ContentScore(title, summary, insights),
		ProcessedAt:  p.now(),
	}, nil
}

// CleanText normalizes whitespace, strips characters outside the allowed
// set, fixes spacing around punctuation and capitalizes sentence starts.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = disallowedChars.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	text = spaceBeforePunc.ReplaceAllString(text, "$1")
	text = repeatedPunc.ReplaceAllString(text, "$1")

	sentences := strings.Split(text, ". ")
	for i, sentence := range sentences {
		sentences[i] = capitalizeFirst(sentence)
	}
	return strings.Join(sentences, ". ")
}

func capitalizeFirst(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) && i == 0 {
			return string(unicode.ToUpper(r)) + s[len(string(r)):]
		}
		break
	}
	return s
}

// extractKeyInsights prefers the supplied insights and tops up from the
// summary, keeping at most three entries between 10 and 150 characters.
func (p *Processor) extractKeyInsights(summary string, supplied []string) []string {
	candidates := make([]string, 0, 3)
	for _, insight := range supplied {
		if len(candidates) == 3 {
			break
		}
		candidates = append(candidates, insight)
	}

	if len(candidates) < 3 {
		derived := extractInsightsFromText(summary)
		for _, insight := range derived {
			if len(candidates) == 3 {
				break
			}
			candidates = append(candidates, insight)
		}
	}

	insights := make([]string, 0, 3)
	for _, candidate := range candidates {
		cleaned := CleanText(candidate)
		if len(cleaned) > 10 && len(cleaned) < 150 {
			insights = append(insights, cleaned)
		}
		if len(insights) == 3 {
			break
		}
	}
	return insights
}

// extractInsightsFromText derives insight candidates from free text:
// short noun-phrase-like fragments around domain keywords, plus whole
// sentences that mention one.
func extractInsightsFromText(text string) []string {
	var insights []string

	lower := strings.ToLower(text)
	for _, keyword := range insightKeywords {
		idx := strings.Index(lower, strings.ToLower(keyword))
		if idx < 0 {
			continue
		}
		phrase := fragmentAt(text, idx)
		if len(phrase) > 3 && len(phrase) < 50 {
			insights = append(insights, "Key focus: "+phrase)
		}
	}

	for _, sentence := range splitSentences(text) {
		if len(sentence) > 20 && len(sentence) < 100 && containsAnyFold(sentence, insightKeywords) {
			insights = append(insights, sentence)
		}
	}

	if len(insights) > 5 {
		insights = insights[:5]
	}
	return insights
}

// fragmentAt returns up to three whitespace-separated words starting at
// the word containing offset.
func fragmentAt(text string, offset int) string {
	start := offset
	for start > 0 && !unicode.IsSpace(rune(text[start-1])) {
		start--
	}
	words := strings.Fields(text[start:])
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.TrimRight(strings.Join(words, " "), ".,!?;:")
}

func splitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// GenerateHashtags builds the hashtag list: configured defaults first,
// then topic tags triggered by keyword matches in title+summary.
// Duplicates are removed preserving first-seen order and the list is
// capped at the configured maximum.
func (p *Processor) GenerateHashtags(title, summary string) []string {
	hashtags := make([]string, 0, len(p.cfg.DefaultHashtags)+4)
	hashtags = append(hashtags, p.cfg.DefaultHashtags...)

	text := strings.ToLower(title + " " + summary)
	for _, topic := range topicHashtags {
		for _, trigger := range topic.triggers {
			if strings.Contains(text, trigger) {
				hashtags = append(hashtags, topic.tag)
				break
			}
		}
	}

	seen := make(map[string]bool, len(hashtags))
	unique := hashtags[:0]
	for _, tag := range hashtags {
		if !seen[tag] {
			seen[tag] = true
			unique = append(unique, tag)
		}
	}

	max := p.cfg.MaxHashtags
	if max <= 0 {
		max = 5
	}
	if len(unique) > max {
		unique = unique[:max]
	}
	return unique
}

// ContentScore rates quality and relevance on a [0,1] scale: title and
// summary length bands, insight count, AI/ML keyword hits and positive
// sentiment each contribute a weighted share.
func (p *Processor) ContentScore(title, summary string, insights []string) float64 {
	score := 0.0

	if len(title) > 10 && len(title) < 100 {
		score += 0.2
	}
	if len(summary) > 50 && len(summary) < 500 {
		score += 0.3
	}
	score += 0.2 * float64(len(insights))

	text := strings.ToLower(title + " " + summary)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(text, keyword) {
			score += 0.1
		}
	}

	if Polarity(title+" "+summary) > 0 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// FilterByQuality keeps articles scoring at or above minScore, sorted by
// content score descending.
func (p *Processor) FilterByQuality(articles []storage.ProcessedArticle, minScore float64) []storage.ProcessedArticle {
	filtered := make([]storage.ProcessedArticle, 0, len(articles))
	for _, article := range articles {
		if article.ContentScore >= minScore {
			filtered = append(filtered, article)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ContentScore > filtered[j].ContentScore
	})

	debuglog.Infof("filtered %d articles to %d above score %.2f", len(articles), len(filtered), minScore)
	return filtered
}

func (p *Processor) maxPostLength() int {
	if p.cfg.MaxPostLength > 0 {
		return p.cfg.MaxPostLength
	}
	return 1300
}

func fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum[:8])
}
