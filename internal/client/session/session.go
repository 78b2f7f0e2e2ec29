// Package session keeps the signed-in user's token and profile in the local
// metadata table so the client stays authenticated across restarts.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storyshare/internal/dbx"
	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Store caches the session in memory and mirrors every change to the
// metadata repository. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{db: db, logger: logger, now: time.Now}
}

// Load reads a previously saved session. A missing session is not an error.
func (s *Store) Load(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(s.db)

	tok, err := repo.Get(ctx, metadata.KeyToken)
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	rawUser, err := repo.Get(ctx, metadata.KeyUser)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	var user *models.User
	if len(rawUser) > 0 {
		var u models.User
		if err := json.Unmarshal(rawUser, &u); err != nil {
			s.logger.Warn(ctx, "stored user is unreadable, ignoring", "err", err)
		} else {
			user = &u
		}
	}

	s.mu.Lock()
	s.token = string(tok)
	s.user = user
	s.mu.Unlock()
	return nil
}

// Save persists a successful login atomically.
func (s *Store) Save(ctx context.Context, res models.LoginResult) error {
	user := res.User()
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyToken, []byte(res.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyUser, rawUser)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.token = res.Token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Token returns the current token, or "" when there is none or it has expired.
func (s *Store) Token(ctx context.Context) string {
	s.mu.RLock()
	tok := s.token
	s.mu.RUnlock()

	if tok == "" {
		return ""
	}
	if s.expired(tok) {
		s.logger.Info(ctx, "session token expired")
		return ""
	}
	return tok
}

// expired inspects the exp claim without verifying the signature; the server
// remains the authority. Opaque tokens never expire locally.
func (s *Store) expired(tok string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !s.now().Before(exp.Time)
}

// CurrentUser returns the signed-in user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UserName returns the display name of the signed-in user, or "".
func (s *Store) UserName() string {
	if u := s.CurrentUser(); u != nil {
		return u.Name
	}
	return ""
}

// Invalidate forgets the session in memory and on disk.
func (s *Store) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, metadata.KeyToken, metadata.KeyUser); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}
