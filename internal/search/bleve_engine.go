package search

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

type bleveEngine struct {
	store *storage.Store
	idx   bleve.Index
}

// NewBleveEngine opens or creates a Bleve index at indexPath and loads
// the current archive into it.
func NewBleveEngine(store *storage.Store, indexPath string) (Searcher, error) {
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, err
	}

	idx, err := bleve.Open(indexPath)
	if err != nil {
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, err
		}
	}

	be := &bleveEngine{store: store, idx: idx}
	if err := be.reindexAll(); err != nil {
		return nil, err
	}
	return be, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true

	summary := bleve.NewTextFieldMapping()
	summary.Analyzer = standard.Name
	summary.Store = true

	content := bleve.NewTextFieldMapping()
	content.Analyzer = standard.Name
	content.Store = true

	link := bleve.NewTextFieldMapping()
	link.Analyzer = standard.Name
	link.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("summary", summary)
	dm.AddFieldMappingsAt("content", content)
	dm.AddFieldMappingsAt("link", link)

	im.DefaultMapping = dm
	return im
}

func (b *bleveEngine) reindexAll() error {
	articles, err := b.store.ProcessedArticles()
	if err != nil {
		return err
	}
	posts, err := b.store.Posts()
	if err != nil {
		return err
	}

	batch := b.idx.NewBatch()
	addArticles(batch, articles)
	addPosts(batch, posts)
	return b.idx.Batch(batch)
}

func addArticles(batch *bleve.Batch, articles []storage.ProcessedArticle) {
	for _, a := range articles {
		_ = batch.Index(docIDForArticle(a.ID), map[string]any{
			"type":    "article",
			"title":   a.Title,
			"summary": a.Summary,
			"content": strings.Join(a.KeyInsights, " "),
			"link":    a.Link,
		})
	}
}

func addPosts(batch *bleve.Batch, posts []storage.Post) {
	for _, p := range posts {
		_ = batch.Index(docIDForPost(p.ID), map[string]any{
			"type":    "post",
			"content": p.Content,
		})
	}
}

func (b *bleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	tokens := tokenize(query)
	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(tok)
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qss := bleve.NewMatchQuery(tok)
		qss.SetField("summary")
		qss.SetBoost(2.0)
		qs = append(qs, qss)
		qsp := bleve.NewPrefixQuery(tok)
		qsp.SetField("summary")
		qsp.SetBoost(1.8)
		qs = append(qs, qsp)

		qc := bleve.NewMatchQuery(tok)
		qc.SetField("content")
		qc.SetBoost(1.0)
		qs = append(qs, qc)
		qcp := bleve.NewPrefixQuery(tok)
		qcp.SetField("content")
		qcp.SetBoost(0.8)
		qs = append(qs, qcp)
	}
	if len(qs) == 0 {
		return []*Result{}, nil
	}

	q := bleve.NewDisjunctionQuery(qs...)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"type", "title", "summary", "content", "link"}

	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		r := &Result{Score: h.Score}
		switch {
		case strings.HasPrefix(h.ID, "article:"):
			a := &storage.ProcessedArticle{ID: strings.TrimPrefix(h.ID, "article:")}
			a.Title, _ = h.Fields["title"].(string)
			a.Summary, _ = h.Fields["summary"].(string)
			a.Link, _ = h.Fields["link"].(string)
			r.Article = a
		case strings.HasPrefix(h.ID, "post:"):
			p := &storage.Post{ID: strings.TrimPrefix(h.ID, "post:")}
			p.Content, _ = h.Fields["content"].(string)
			r.Post = p
			r.IsPost = true
		default:
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// OnDataUpdated indexes the given articles and posts.
func (b *bleveEngine) OnDataUpdated(articles []storage.ProcessedArticle, posts []storage.Post) {
	batch := b.idx.NewBatch()
	addArticles(batch, articles)
	addPosts(batch, posts)
	_ = b.idx.Batch(batch)
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	count, err := b.idx.DocCount()
	return int(count), err
}

func docIDForArticle(id string) string { return "article:" + id }
func docIDForPost(id string) string    { return "post:" + id }
