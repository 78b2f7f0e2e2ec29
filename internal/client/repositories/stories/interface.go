package stories

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

// Repository is the contract the rest of the client relies on.
type Repository interface {
	// Put inserts or overwrites the record for story.ID.
	Put(ctx context.Context, story models.Story) error

	// PutAll applies Put to each story. A failure on one story does not roll
	// back the others; all failures are joined into the returned error.
	PutAll(ctx context.Context, stories []models.Story) error

	// GetAll returns every stored story. Order is unspecified.
	GetAll(ctx context.Context) ([]models.Story, error)

	// GetByID returns common.ErrNotFound when the id is absent.
	GetByID(ctx context.Context, id string) (*models.Story, error)

	// Delete removes the record if present. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	Clear(ctx context.Context) error
}
