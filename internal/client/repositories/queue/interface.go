// Package queue persists sync queue entries so pending offline stories
// survive a restart. Row ids are assigned by SQLite and define FIFO order.
package queue

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

type Repository interface {
	// Append stores a new pending entry and returns it with its id set.
	Append(ctx context.Context, story models.Story) (*models.QueueEntry, error)

	// ListPending returns every entry that is not abandoned, oldest first.
	ListPending(ctx context.Context) ([]models.QueueEntry, error)

	// ListAbandoned returns entries moved aside after exhausting their attempts.
	ListAbandoned(ctx context.Context) ([]models.QueueEntry, error)

	// MarkFailed records a failed attempt.
	MarkFailed(ctx context.Context, id int64, attempts int, lastError string) error

	// MarkAbandoned moves an entry aside so it no longer blocks the head.
	MarkAbandoned(ctx context.Context, id int64, attempts int, lastError string) error

	// Remove deletes the entry once the server confirmed it.
	Remove(ctx context.Context, id int64) error
}
