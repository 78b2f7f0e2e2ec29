package client

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

type Client interface {
	ListStories(ctx context.Context, token string) ([]models.Story, error)
	GetStory(ctx context.Context, id string, token string) (*models.Story, error)
	CreateStory(ctx context.Context, draft models.Draft, token string) (*models.AddResult, error)
	Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error)
	Register(ctx context.Context, name, email string, password []byte) (string, error)
	Ping(ctx context.Context) error
}
