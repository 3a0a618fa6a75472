package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	rawBucket       = []byte("raw_articles")
	processedBucket = []byte("processed_articles")
	postsBucket     = []byte("posts")
	scheduledBucket = []byte("scheduled_posts")
)

// Store persists every pipeline record in a single bbolt database.
// All writes happen inside bolt transactions, so a crash mid-write never
// leaves a partially written record behind.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{rawBucket, processedBucket, postsBucket, scheduledBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveRawArticles(articles []RawArticle) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(rawBucket)
		for _, article := range articles {
			data, err := json.Marshal(article)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(article.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// RawArticles returns all stored raw articles, newest first.
func (s *Store) RawArticles() ([]RawArticle, error) {
	var articles []RawArticle
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(rawBucket)
		return b.ForEach(func(_, v []byte) error {
			var article RawArticle
			if err := json.Unmarshal(v, &article); err != nil {
				return nil
			}
			articles = append(articles, article)
			return nil
		})
	})
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].ScrapedAt.After(articles[j].ScrapedAt)
	})
	return articles, err
}

func (s *Store) SaveProcessedArticles(articles []ProcessedArticle) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(processedBucket)
		for _, article := range articles {
			data, err := json.Marshal(article)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(article.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// ProcessedArticles returns stored processed articles sorted by content
// score, highest first.
func (s *Store) ProcessedArticles() ([]ProcessedArticle, error) {
	var articles []ProcessedArticle
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(processedBucket)
		return b.ForEach(func(_, v []byte) error {
			var article ProcessedArticle
			if err := json.Unmarshal(v, &article); err != nil {
				return nil
			}
			articles = append(articles, article)
			return nil
		})
	})
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].ContentScore > articles[j].ContentScore
	})
	return articles, err
}

func (s *Store) SavePosts(posts []Post) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(postsBucket)
		for _, post := range posts {
			data, err := json.Marshal(post)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(post.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Posts returns stored composed posts, newest first.
func (s *Store) Posts() ([]Post, error) {
	var posts []Post
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(postsBucket)
		return b.ForEach(func(_, v []byte) error {
			var post Post
			if err := json.Unmarshal(v, &post); err != nil {
				return nil
			}
			posts = append(posts, post)
			return nil
		})
	})
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].GeneratedAt.After(posts[j].GeneratedAt)
	})
	return posts, err
}

// PutScheduledPost writes a single scheduled post, creating or replacing
// the record under its post_id.
func (s *Store) PutScheduledPost(post *ScheduledPost) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(scheduledBucket)
		data, err := json.Marshal(post)
		if err != nil {
			return err
		}
		return b.Put([]byte(post.PostID), data)
	})
}

func (s *Store) GetScheduledPost(postID string) (*ScheduledPost, error) {
	var post ScheduledPost
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(scheduledBucket)
		data := b.Get([]byte(postID))
		if data == nil {
			return fmt.Errorf("scheduled post not found")
		}
		return json.Unmarshal(data, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ScheduledPosts returns every scheduled post ordered by creation time.
func (s *Store) ScheduledPosts() ([]*ScheduledPost, error) {
	var posts []*ScheduledPost
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(scheduledBucket)
		return b.ForEach(func(_, v []byte) error {
			var post ScheduledPost
			if err := json.Unmarshal(v, &post); err != nil {
				return nil
			}
			posts = append(posts, &post)
			return nil
		})
	})
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	return posts, err
}

// ScheduledPostsByStatus filters the scheduled list by lifecycle status.
func (s *Store) ScheduledPostsByStatus(status Status) ([]*ScheduledPost, error) {
	all, err := s.ScheduledPosts()
	if err != nil {
		return nil, err
	}
	filtered := make([]*ScheduledPost, 0, len(all))
	for _, post := range all {
		if post.Status == status {
			filtered = append(filtered, post)
		}
	}
	return filtered, nil
}
