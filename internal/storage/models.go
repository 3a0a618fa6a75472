package storage

import (
	"time"
)

// Status is the lifecycle state of a ScheduledPost. Transitions are
// scheduled -> posted | failed | cancelled, and failed -> scheduled via
// retry. posted and cancelled are terminal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPosted    Status = "posted"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// RawArticle is an unprocessed newsletter record as delivered by a source.
// Immutable once received.
type RawArticle struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Insights  []string  `json:"insights"`
	Link      string    `json:"link"`
	Source    string    `json:"source"`
	Date      string    `json:"date"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// ProcessedArticle wraps a RawArticle with cleaned text, curated insights,
// hashtags and a quality score. Never mutated after creation.
type ProcessedArticle struct {
	ID           string     `json:"id"`
	Article      RawArticle `json:"original_article"`
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	KeyInsights  []string   `json:"key_insights"`
	Hashtags     []string   `json:"hashtags"`
	Link         string     `json:"link"`
	Source       string     `json:"source"`
	ContentScore float64    `json:"content_score"`
	ProcessedAt  time.Time  `json:"processed_at"`
}

// Post is a validated, template-rendered text ready for scheduling.
type Post struct {
	ID              string           `json:"id"`
	Content         string           `json:"content"`
	Article         ProcessedArticle `json:"article"`
	Template        string           `json:"template_used"`
	Length          int              `json:"post_length"`
	HashtagCount    int              `json:"hashtag_count"`
	EngagementScore float64          `json:"engagement_score"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Custom          bool             `json:"custom,omitempty"`
}

// ScheduledPost binds a Post to a future time slot with lifecycle status.
// Created and status-mutated only by the scheduling engine.
type ScheduledPost struct {
	PostID        string     `json:"post_id"`
	Post          Post       `json:"post"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	PostedAt      *time.Time `json:"posted_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	RescheduledAt *time.Time `json:"rescheduled_at,omitempty"`
	Error         string     `json:"error,omitempty"`
}
