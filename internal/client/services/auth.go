package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storyshare/internal/client/client"
	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//   - Register: create a new account on the server.
//   - Logout: forget the local session.
//   - CheckAuthState: report whether the stored session is still usable.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Register(ctx context.Context, name, email string, password []byte) (string, error)
	Logout(ctx context.Context) error
	Token(ctx context.Context) string
	CurrentUser() *models.User
	CheckAuthState(ctx context.Context) bool
}

// SessionStore is implemented by *session.Store.
type SessionStore interface {
	Save(ctx context.Context, res models.LoginResult) error
	Token(ctx context.Context) string
	CurrentUser() *models.User
	Invalidate(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session SessionStore
	logger  logging.Logger
}

func NewAuthService(c client.Client, sess SessionStore, logger logging.Logger) AuthService {
	return &authService{client: c, session: sess, logger: logger}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		if common.AsUnauthorized(err) {
			return nil, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Save(ctx, *res); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	u := res.User()
	a.logger.Info(ctx, "logged in", "user_id", u.UserID)
	return &u, nil
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	return a.client.Register(ctx, name, email, password)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Invalidate(ctx)
}

func (a *authService) Token(ctx context.Context) string {
	return a.session.Token(ctx)
}

func (a *authService) CurrentUser() *models.User {
	return a.session.CurrentUser()
}

// CheckAuthState calls the stories endpoint with the stored token. Only a
// 401 drops the session; an unreachable or failing server keeps it.
func (a *authService) CheckAuthState(ctx context.Context) bool {
	token := a.session.Token(ctx)
	if token == "" {
		return false
	}

	_, err := a.client.ListStories(ctx, token)
	switch {
	case err == nil:
		return true
	case common.AsUnauthorized(err):
		if err := a.session.Invalidate(ctx); err != nil {
			a.logger.Warn(ctx, "failed to clear session", "err", err)
		}
		return false
	case errors.Is(err, common.ErrNetworkUnavailable):
		return true
	default:
		a.logger.Warn(ctx, "auth check failed", "err", err)
		return true
	}
}
