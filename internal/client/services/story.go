package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/client"
	"github.com/dmitrijs2005/storyshare/internal/client/connectivity"
	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/notify"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/stories"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/google/uuid"
)

const (
	OfflineSavedMessage   = "Story saved offline and will be synced when online"
	NewStoryNotification  = "New Story Added"
	notificationBodyRunes = 100
)

type StoryService interface {
	ListStories(ctx context.Context, token string) ([]models.Story, error)
	GetStory(ctx context.Context, id string, token string) (*models.Story, error)
	AddStory(ctx context.Context, draft models.Draft, token string) (*models.AddResult, error)
	Sync(ctx context.Context) int
	Pending() []models.QueueEntry
	Abandoned(ctx context.Context) ([]models.QueueEntry, error)
}

// Session is the part of the session store the story service touches.
type Session interface {
	Invalidate(ctx context.Context) error
	UserName() string
}

// SyncQueue is implemented by *syncqueue.Queue.
type SyncQueue interface {
	Enqueue(ctx context.Context, story models.Story) models.QueueEntry
	Drain(ctx context.Context) int
	DrainAsync(ctx context.Context)
	Pending() []models.QueueEntry
	Abandoned(ctx context.Context) ([]models.QueueEntry, error)
}

type storyService struct {
	client   client.Client
	stories  stories.Repository
	queue    SyncQueue
	session  Session
	online   connectivity.Checker
	notifier notify.Notifier
	logger   logging.Logger

	now   func() time.Time
	newID func() string
}

func NewStoryService(c client.Client, storyRepo stories.Repository, q SyncQueue, sess Session,
	online connectivity.Checker, notifier notify.Notifier, logger logging.Logger) StoryService {
	return &storyService{
		client:   c,
		stories:  storyRepo,
		queue:    q,
		session:  sess,
		online:   online,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// ListStories returns the server's list and refreshes the cache with it.
// When the API cannot serve the list, cached stories are returned instead.
func (s *storyService) ListStories(ctx context.Context, token string) ([]models.Story, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	remote, err := s.client.ListStories(ctx, token)
	if err == nil {
		if err := s.stories.PutAll(ctx, remote); err != nil {
			s.logger.Warn(ctx, "failed to cache stories", "err", err)
		}
		s.queue.DrainAsync(ctx)
		return remote, nil
	}

	if common.AsUnauthorized(err) {
		s.invalidate(ctx)
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}

	s.logger.Warn(ctx, "list from server failed, using cached stories", "err", err)
	cached, cacheErr := s.stories.GetAll(ctx)
	if cacheErr != nil {
		s.logger.Warn(ctx, "story cache unavailable", "err", cacheErr)
	}
	if len(cached) > 0 {
		return cached, nil
	}
	return nil, fmt.Errorf("%w: %w", common.ErrNoDataAvailable, err)
}

// GetStory fetches one story, preferring the server when it is reachable.
func (s *storyService) GetStory(ctx context.Context, id string, token string) (*models.Story, error) {
	if s.online.Online(ctx) {
		story, err := s.client.GetStory(ctx, id, token)
		if err == nil {
			if err := s.stories.Put(ctx, *story); err != nil {
				s.logger.Warn(ctx, "failed to cache story", "story_id", id, "err", err)
			}
			return story, nil
		}
		if common.AsUnauthorized(err) {
			s.invalidate(ctx)
		}
		s.logger.Warn(ctx, "fetch from server failed, using cached story", "story_id", id, "err", err)
	}

	story, err := s.stories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		s.logger.Warn(ctx, "story cache unavailable", "err", err)
		return nil, fmt.Errorf("story %s: %w: %w", id, common.ErrNotFound, err)
	}
	return story, nil
}

// AddStory creates the story on the server, or stores and queues it when
// offline. A queued result has Pending set.
func (s *storyService) AddStory(ctx context.Context, draft models.Draft, token string) (*models.AddResult, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}
	if !draft.Valid() {
		return nil, common.ErrInvalidDraft
	}

	if !s.online.Online(ctx) {
		story := models.Story{
			ID:          common.OfflineIDPrefix + s.newID(),
			Name:        s.session.UserName(),
			Description: draft.Description,
			Photo:       draft.Photo,
			PhotoName:   draft.PhotoName,
			PhotoType:   draft.PhotoType,
			Lat:         draft.Lat,
			Lon:         draft.Lon,
			CreatedAt:   s.now().UTC(),
			IsOffline:   true,
		}
		if err := s.stories.Put(ctx, story); err != nil {
			s.logger.Warn(ctx, "failed to cache offline story", "story_id", story.ID, "err", err)
		}
		s.queue.Enqueue(ctx, story)

		return &models.AddResult{Message: OfflineSavedMessage, Story: &story, Pending: true}, nil
	}

	res, err := s.client.CreateStory(ctx, draft, token)
	if err != nil {
		if common.AsUnauthorized(err) {
			s.invalidate(ctx)
			return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
		}
		return nil, err
	}

	n := models.Notification{
		Title: NewStoryNotification,
		Body:  common.Truncate(draft.Description, notificationBodyRunes) + "...",
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn(ctx, "failed to notify other clients", "err", err)
	}
	return res, nil
}

// Sync drains the queue in the foreground and reports how many stories were sent.
func (s *storyService) Sync(ctx context.Context) int {
	return s.queue.Drain(ctx)
}

func (s *storyService) Pending() []models.QueueEntry {
	return s.queue.Pending()
}

func (s *storyService) Abandoned(ctx context.Context) ([]models.QueueEntry, error) {
	return s.queue.Abandoned(ctx)
}

func (s *storyService) invalidate(ctx context.Context) {
	s.logger.Info(ctx, "server rejected the session, logging out")
	if err := s.session.Invalidate(ctx); err != nil {
		s.logger.Warn(ctx, "failed to clear session", "err", err)
	}
}
