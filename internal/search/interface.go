package search

import "github.com/Tharikabalu/Linkedin-post-automation/internal/storage"

// Searcher is the minimal search API used by the CLI.
type Searcher interface {
	Search(query string, limit int) ([]*Result, error)
}

// UpdateListener can be implemented by engines that maintain an
// external index and want to be notified about data changes.
type UpdateListener interface {
	OnDataUpdated(articles []storage.ProcessedArticle, posts []storage.Post)
}

// DebugStatser reports index doc counts for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}

// Result is a search match with relevance scoring. Exactly one of
// Article and Post is set.
type Result struct {
	Article *storage.ProcessedArticle
	Post    *storage.Post
	IsPost  bool
	Score   float64
	Matches []Match
}

// Match records where the query matched.
type Match struct {
	Field  string // "title", "summary", "insights", "content"
	Text   string // matched text snippet
	Weight float64
}
