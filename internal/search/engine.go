package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

// Engine provides term-based search over the archive without heavy
// indexing. It rescans the store on every query.
type Engine struct {
	store *storage.Store
}

func NewEngine(store *storage.Store) *Engine {
	return &Engine{store: store}
}

// Search scans processed articles and generated posts, scoring each
// against the query terms. Queries shorter than two characters return
// nothing.
func (e *Engine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []*Result{}, nil
	}

	var results []*Result

	articles, err := e.store.ProcessedArticles()
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if result := e.searchArticle(&articles[i], terms); result != nil {
			results = append(results, result)
		}
	}

	posts, err := e.store.Posts()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if result := e.searchPost(&posts[i], terms); result != nil {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (e *Engine) searchArticle(article *storage.ProcessedArticle, terms []string) *Result {
	var matches []Match
	var totalScore float64

	if score := scoreField(article.Title, terms, 4.0); score > 0 {
		matches = append(matches, Match{Field: "title", Text: article.Title, Weight: score})
		totalScore += score
	}

	if score := scoreField(article.Summary, terms, 2.0); score > 0 {
		matches = append(matches, Match{Field: "summary", Text: truncate(article.Summary, 150), Weight: score})
		totalScore += score
	}

	insights := strings.Join(article.KeyInsights, " ")
	if score := scoreField(insights, terms, 1.5); score > 0 {
		matches = append(matches, Match{Field: "insights", Text: truncate(insights, 150), Weight: score})
		totalScore += score
	}

	if totalScore <= 0 {
		return nil
	}

	// Higher-quality articles surface first among equal matches.
	totalScore *= 1.0 + article.ContentScore/10

	return &Result{
		Article: article,
		Score:   totalScore,
		Matches: matches,
	}
}

func (e *Engine) searchPost(post *storage.Post, terms []string) *Result {
	score := scoreField(post.Content, terms, 1.0)
	if score <= 0 {
		return nil
	}

	return &Result{
		Post:   post,
		IsPost: true,
		Score:  score,
		Matches: []Match{
			{Field: "content", Text: bestSnippet(post.Content, terms, 200), Weight: score},
		},
	}
}

// scoreField rates how well a field matches the query terms. Exact
// phrase hits score highest, then word-boundary and substring hits,
// with a multi-term bonus and a mild term-frequency factor.
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var score float64
	matched := 0

	for _, term := range terms {
		if strings.Contains(lower, term) {
			score += 2.0
			matched++
		}
		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
				matched++
			case strings.HasPrefix(word, term) || strings.HasSuffix(word, term):
				score += 1.0
				matched++
			case strings.Contains(word, term):
				score += 0.5
				matched++
			}
		}
	}

	if len(terms) > 1 && matched > 1 {
		score *= 1.0 + float64(matched)/float64(len(terms))
	}

	tf := float64(matched) / float64(len(words))
	score *= 1.0 + math.Log(1.0+tf)

	return score * weight
}

// bestSnippet slides a window over the text and returns the stretch
// containing the most query terms.
func bestSnippet(text string, terms []string, maxLength int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	windowSize := maxLength / 8
	if windowSize >= len(words) {
		return truncate(text, maxLength)
	}

	bestScore := 0.0
	bestStart := 0
	for i := 0; i <= len(words)-windowSize; i++ {
		window := strings.ToLower(strings.Join(words[i:i+windowSize], " "))
		score := 0.0
		for _, term := range terms {
			if strings.Contains(window, term) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestStart = i
		}
	}

	return truncate(strings.Join(words[bestStart:bestStart+windowSize], " "), maxLength)
}

// tokenize lowercases text and splits it into terms of at least two
// characters.
func tokenize(text string) []string {
	var terms []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 1 {
			terms = append(terms, current.String())
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return terms
}

func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-1] + "…"
}
