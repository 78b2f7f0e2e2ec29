// Package syncqueue buffers stories created while offline and replays them
// against the API once it is reachable.
//
// Entries are drained strictly in FIFO order by a single drain loop at a
// time. A failed head stops the drain so later stories are never created
// before earlier ones. Delivery is at-least-once: if the server accepts a
// story but the success is not recorded locally, the next drain sends it
// again.
package syncqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/storyshare/internal/client/connectivity"
	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/queue"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/stories"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/logging"
)

const DefaultMaxAttempts = 5

// Creator is the part of client.Client the queue needs.
type Creator interface {
	CreateStory(ctx context.Context, draft models.Draft, token string) (*models.AddResult, error)
}

type TokenSource interface {
	Token(ctx context.Context) string
}

type Queue struct {
	creator Creator
	stories stories.Repository
	store   queue.Repository
	tokens  TokenSource
	online  connectivity.Checker
	logger  logging.Logger

	maxAttempts int

	mu       sync.Mutex
	entries  []models.QueueEntry
	draining atomic.Bool
	wg       sync.WaitGroup

	stop     chan struct{}
	stopOnce sync.Once
}

type Option func(*Queue)

// WithMaxAttempts sets how many permanent rejections an entry may collect
// before it is moved aside. Zero retries forever.
func WithMaxAttempts(n int) Option {
	return func(q *Queue) { q.maxAttempts = n }
}

func New(creator Creator, storyRepo stories.Repository, queueRepo queue.Repository,
	tokens TokenSource, online connectivity.Checker, logger logging.Logger, opts ...Option) *Queue {
	q := &Queue{
		creator:     creator,
		stories:     storyRepo,
		store:       queueRepo,
		tokens:      tokens,
		online:      online,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
		stop:        make(chan struct{}),
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Load replaces the in-memory queue with the persisted pending entries.
// Entries interrupted mid-flight are treated as not yet tried.
func (q *Queue) Load(ctx context.Context) error {
	entries, err := q.store.ListPending(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].State == models.QueueStateInFlight {
			entries[i].State = models.QueueStatePending
		}
	}

	q.mu.Lock()
	q.entries = entries
	q.mu.Unlock()

	if len(entries) > 0 {
		q.logger.Info(ctx, "sync queue restored", "pending", len(entries))
	}
	return nil
}

// Enqueue appends story to the tail and, when online, starts a background
// drain. A persistence failure is logged; the entry still lives in memory
// for the rest of the process.
func (q *Queue) Enqueue(ctx context.Context, story models.Story) models.QueueEntry {
	entry, err := q.store.Append(ctx, story)
	if err != nil {
		q.logger.Warn(ctx, "failed to persist queue entry, keeping it in memory only", "story_id", story.ID, "err", err)
		entry = &models.QueueEntry{Story: story, State: models.QueueStatePending}
	}

	q.mu.Lock()
	q.entries = append(q.entries, *entry)
	q.mu.Unlock()

	if q.online.Online(ctx) {
		q.DrainAsync(ctx)
	}
	return *entry
}

// DrainAsync runs Drain in the background. The drain outlives ctx's
// cancellation but keeps its values; Stop is what ends it.
func (q *Queue) DrainAsync(ctx context.Context) {
	if q.stopping() {
		return
	}
	ctx = context.WithoutCancel(ctx)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.Drain(ctx)
	}()
}

// Wait blocks until every background drain has returned.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Stop makes running drains return once the request in flight completes and
// turns later drains into no-ops. Unsent entries stay persisted for the next
// start.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() { close(q.stop) })
}

func (q *Queue) stopping() bool {
	select {
	case <-q.stop:
		return true
	default:
		return false
	}
}

// Drain sends queued stories oldest first and returns how many were
// accepted. It stops at the first failure. A call made while another drain
// is running returns 0 immediately.
func (q *Queue) Drain(ctx context.Context) int {
	if !q.draining.CompareAndSwap(false, true) {
		return 0
	}
	defer q.draining.Store(false)

	if q.Len() == 0 || q.stopping() {
		return 0
	}

	token := q.tokens.Token(ctx)
	if token == "" {
		q.logger.Debug(ctx, "sync skipped, not authenticated")
		return 0
	}

	synced := 0
	for ctx.Err() == nil && !q.stopping() {
		head, ok := q.head()
		if !ok {
			break
		}

		_, err := q.creator.CreateStory(ctx, head.Story.Draft(), token)
		if err != nil {
			q.fail(ctx, head, err)
			break
		}

		q.pop()
		if err := q.store.Remove(ctx, head.ID); err != nil {
			q.logger.Warn(ctx, "failed to remove synced queue entry", "entry_id", head.ID, "err", err)
		}
		if err := q.stories.Delete(ctx, head.Story.ID); err != nil {
			q.logger.Warn(ctx, "failed to delete synced offline story", "story_id", head.Story.ID, "err", err)
		}
		q.logger.Info(ctx, "offline story synced", "story_id", head.Story.ID)
		synced++
	}
	return synced
}

// head marks the first entry in flight and returns a copy of it.
func (q *Queue) head() (models.QueueEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return models.QueueEntry{}, false
	}
	q.entries[0].State = models.QueueStateInFlight
	return q.entries[0], true
}

func (q *Queue) pop() {
	q.mu.Lock()
	q.entries = q.entries[1:]
	q.mu.Unlock()
}

func (q *Queue) fail(ctx context.Context, head models.QueueEntry, cause error) {
	attempts := head.Attempts + 1
	lastErr := cause.Error()

	var re *common.RemoteError
	if errors.As(cause, &re) && re.Permanent() && q.maxAttempts > 0 && attempts >= q.maxAttempts {
		q.pop()
		if err := q.store.MarkAbandoned(ctx, head.ID, attempts, lastErr); err != nil {
			q.logger.Warn(ctx, "failed to persist abandoned queue entry", "entry_id", head.ID, "err", err)
		}
		q.logger.Error(ctx, "queued story rejected too many times, moved aside",
			"story_id", head.Story.ID, "attempts", attempts, "err", cause)
		return
	}

	q.mu.Lock()
	q.entries[0].State = models.QueueStateFailed
	q.entries[0].Attempts = attempts
	q.entries[0].LastError = lastErr
	q.mu.Unlock()

	if err := q.store.MarkFailed(ctx, head.ID, attempts, lastErr); err != nil {
		q.logger.Warn(ctx, "failed to persist queue attempt", "entry_id", head.ID, "err", err)
	}
	q.logger.Warn(ctx, "sync halted", "story_id", head.Story.ID, "attempts", attempts, "err", cause)
}

// Len returns the number of entries waiting to be sent.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Pending returns a snapshot of the queue, head first.
func (q *Queue) Pending() []models.QueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.QueueEntry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Abandoned lists entries moved aside after repeated permanent rejections.
func (q *Queue) Abandoned(ctx context.Context) ([]models.QueueEntry, error) {
	return q.store.ListAbandoned(ctx)
}
