package schedule

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/storage"
)

const defaultTickInterval = 60 * time.Second

// Poster publishes rendered post content to the external platform.
// Implementations live outside the engine; firing calls it synchronously.
type Poster interface {
	Publish(ctx context.Context, content string) error
}

// Options override the configured scheduling parameters for one Schedule
// call. Zero values fall back to the engine configuration.
type Options struct {
	PostingTimes     []string
	MaxPerDay        int
	MinIntervalHours int
}

// QueueStatus summarizes the transient queue and the persisted list.
type QueueStatus struct {
	QueueSize      int `json:"queue_size"`
	ScheduledPosts int `json:"scheduled_posts"`
	PostedPosts    int `json:"posted_posts"`
	FailedPosts    int `json:"failed_posts"`
}

// Analytics aggregates posting performance over the persisted list.
type Analytics struct {
	TotalPosts             int     `json:"total_posts"`
	PostedPosts            int     `json:"posted_posts"`
	FailedPosts            int     `json:"failed_posts"`
	SuccessRate            float64 `json:"success_rate"`
	AverageEngagementScore float64 `json:"average_engagement_score"`
	PostsToday             int     `json:"posts_today"`
}

// Engine owns ScheduledPost creation and every status mutation. It keeps
// the persisted list in memory, mirrors mutations to the store, and runs
// a polling loop that fires due jobs through the Poster.
//
// A single live engine instance per store is assumed; there is no
// cross-process locking.
type Engine struct {
	store  *storage.Store
	poster Poster
	cfg    config.ScheduleConfig

	mu        sync.Mutex
	queue     []storage.Post
	scheduled []*storage.ScheduledPost
	jobs      jobHeap
	running   bool
	stop      chan struct{}

	// now is swappable for tests
	now func() time.Time
}

// NewEngine loads the persisted scheduled list and re-registers firing
// jobs for entries still in the scheduled state.
func NewEngine(store *storage.Store, poster Poster, cfg config.ScheduleConfig) (*Engine, error) {
	e := &Engine{
		store:  store,
		poster: poster,
		cfg:    cfg,
		now:    time.Now,
	}

	posts, err := store.ScheduledPosts()
	if err != nil {
		return nil, fmt.Errorf("loading scheduled posts: %w", err)
	}
	e.scheduled = posts

	for _, sp := range posts {
		if sp.Status == storage.StatusScheduled {
			heap.Push(&e.jobs, job{fireAt: sp.ScheduledTime, postID: sp.PostID})
		}
	}

	debuglog.Infof("loaded %d scheduled posts (%d pending)", len(posts), e.jobs.Len())
	return e, nil
}

// Schedule assigns a time slot to each of the first MaxPerDay posts,
// persists the new entries and registers them for firing. The slot for
// every post is computed from the current time; see nextSlot for the
// resulting collision behavior within one batch.
//
// MinIntervalHours is accepted for API compatibility but does not affect
// slot choice.
func (e *Engine) Schedule(posts []storage.Post, opts Options) []*storage.ScheduledPost {
	e.mu.Lock()
	defer e.mu.Unlock()

	times := opts.PostingTimes
	if len(times) == 0 {
		times = e.cfg.PostingTimes
	}
	maxPerDay := opts.MaxPerDay
	if maxPerDay <= 0 {
		maxPerDay = e.cfg.MaxPostsPerDay
	}
	if maxPerDay <= 0 {
		maxPerDay = 3
	}
	if len(posts) > maxPerDay {
		posts = posts[:maxPerDay]
	}

	now := e.now()
	scheduled := make([]*storage.ScheduledPost, 0, len(posts))
	for i, post := range posts {
		sp := &storage.ScheduledPost{
			PostID:        fmt.Sprintf("post_%s_%d", now.Format("20060102_150405"), i),
			Post:          post,
			ScheduledTime: nextSlot(now, times),
			Status:        storage.StatusScheduled,
			CreatedAt:     now,
		}

		e.scheduled = append(e.scheduled, sp)
		e.persist(sp)
		heap.Push(&e.jobs, job{fireAt: sp.ScheduledTime, postID: sp.PostID})
		scheduled = append(scheduled, sp)

		debuglog.Infof("scheduled %s for %s", sp.PostID, sp.ScheduledTime.Format(time.RFC3339))
	}

	return scheduled
}

// AddToQueue appends posts to the transient unscheduled queue. The queue
// is not persisted; callers rebuild it per process run.
func (e *Engine) AddToQueue(posts []storage.Post) {
	if len(posts) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.queue = append(e.queue, posts...)
	debuglog.Infof("added %d posts to queue (size %d)", len(posts), len(e.queue))
}

// ClearQueue empties the transient queue.
func (e *Engine) ClearQueue() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.queue = nil
	debuglog.Infof("posting queue cleared")
}

// Queue returns a copy of the transient queue.
func (e *Engine) Queue() []storage.Post {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]storage.Post, len(e.queue))
	copy(out, e.queue)
	return out
}

// QueueStatus reports queue size and persisted-list counts.
func (e *Engine) QueueStatus() QueueStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := QueueStatus{
		QueueSize:      len(e.queue),
		ScheduledPosts: len(e.scheduled),
	}
	for _, sp := range e.scheduled {
		switch sp.Status {
		case storage.StatusPosted:
			status.PostedPosts++
		case storage.StatusFailed:
			status.FailedPosts++
		}
	}
	return status
}

// ScheduledPosts returns a copy of the persisted list, optionally
// filtered by status ("" returns everything).
func (e *Engine) ScheduledPosts(status storage.Status) []*storage.ScheduledPost {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*storage.ScheduledPost, 0, len(e.scheduled))
	for _, sp := range e.scheduled {
		if status == "" || sp.Status == status {
			copied := *sp
			out = append(out, &copied)
		}
	}
	return out
}

// Cancel marks a scheduled entry cancelled. It succeeds exactly once per
// eligible entry: entries already posted, failed or cancelled (and
// unknown ids) return false.
func (e *Engine) Cancel(postID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, sp := range e.scheduled {
		if sp.PostID == postID && sp.Status == storage.StatusScheduled {
			now := e.now()
			sp.Status = storage.StatusCancelled
			sp.CancelledAt = &now
			e.persist(sp)
			debuglog.Infof("cancelled post %s", postID)
			return true
		}
	}

	debuglog.Warnf("post not found or already processed: %s", postID)
	return false
}

// RescheduleFailed resets every failed entry to scheduled with a fresh
// slot and re-registers it for firing.
func (e *Engine) RescheduleFailed() []*storage.ScheduledPost {
	e.mu.Lock()
	defer e.mu.Unlock()

	var rescheduled []*storage.ScheduledPost
	for _, sp := range e.scheduled {
		if sp.Status != storage.StatusFailed {
			continue
		}

		now := e.now()
		sp.Status = storage.StatusScheduled
		sp.RescheduledAt = &now
		sp.ScheduledTime = nextSlot(now, e.cfg.PostingTimes)
		heap.Push(&e.jobs, job{fireAt: sp.ScheduledTime, postID: sp.PostID})
		e.persist(sp)
		rescheduled = append(rescheduled, sp)
	}

	if len(rescheduled) > 0 {
		debuglog.Infof("rescheduled %d failed posts", len(rescheduled))
	}
	return rescheduled
}

// Analytics aggregates posting performance. The second return value is
// false when no scheduled posts exist.
func (e *Engine) Analytics() (Analytics, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.scheduled) == 0 {
		return Analytics{}, false
	}

	a := Analytics{TotalPosts: len(e.scheduled)}
	today := e.now()

	var engagementSum float64
	for _, sp := range e.scheduled {
		switch sp.Status {
		case storage.StatusPosted:
			a.PostedPosts++
			engagementSum += sp.Post.EngagementScore
			if sp.PostedAt != nil && sameDay(*sp.PostedAt, today) {
				a.PostsToday++
			}
		case storage.StatusFailed:
			a.FailedPosts++
		}
	}

	a.SuccessRate = float64(a.PostedPosts) / float64(a.TotalPosts)
	if a.PostedPosts > 0 {
		a.AverageEngagementScore = engagementSum / float64(a.PostedPosts)
	}
	return a, true
}

// Start launches the polling loop. Firing happens inline on the loop
// goroutine, so a slow Poster call delays subsequent ticks rather than
// overlapping them.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		debuglog.Warnf("scheduler already running")
		return
	}
	e.running = true
	e.stop = make(chan struct{})
	stop := e.stop
	e.mu.Unlock()

	tick := e.cfg.TickInterval
	if tick <= 0 {
		tick = defaultTickInterval
	}

	debuglog.Infof("scheduler started (tick %s)", tick)
	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				e.fireDue(ctx)
			}
		}
	}()
}

// Stop requests a cooperative shutdown. An in-flight firing completes;
// the loop exits on the next select.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	close(e.stop)
	e.running = false
	debuglog.Infof("scheduler stopped")
}

// fireDue publishes every job whose slot time has arrived.
func (e *Engine) fireDue(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	for e.jobs.Len() > 0 && !e.jobs[0].fireAt.After(now) {
		due := heap.Pop(&e.jobs).(job)

		sp := e.find(due.postID)
		if sp == nil || sp.Status != storage.StatusScheduled {
			// cancelled or already handled; registration is stale
			continue
		}
		e.fire(ctx, sp)
	}
}

func (e *Engine) fire(ctx context.Context, sp *storage.ScheduledPost) {
	debuglog.Infof("publishing post %s", sp.PostID)

	if err := e.poster.Publish(ctx, sp.Post.Content); err != nil {
		sp.Status = storage.StatusFailed
		sp.Error = err.Error()
		e.persist(sp)
		debuglog.Errorf("publishing post %s: %v", sp.PostID, err)
		return
	}

	now := e.now()
	sp.Status = storage.StatusPosted
	sp.PostedAt = &now
	sp.Error = ""
	e.persist(sp)
	debuglog.Infof("post %s published", sp.PostID)
}

// persist mirrors one entry to the store. A write failure is reported
// but the in-memory state change is kept; the store catches up on the
// next successful write of the same entry.
func (e *Engine) persist(sp *storage.ScheduledPost) {
	if err := e.store.PutScheduledPost(sp); err != nil {
		debuglog.Errorf("persisting post %s: %v", sp.PostID, err)
	}
}

func (e *Engine) find(postID string) *storage.ScheduledPost {
	for _, sp := range e.scheduled {
		if sp.PostID == postID {
			return sp
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
