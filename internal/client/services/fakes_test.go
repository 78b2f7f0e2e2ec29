package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/queue"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/stories"
	"github.com/dmitrijs2005/storyshare/internal/client/storage"
	"github.com/dmitrijs2005/storyshare/internal/client/syncqueue"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client. Each *Fn field, when set, decides the
// answer of the matching call.
type fakeClient struct {
	mu sync.Mutex

	listFn   func() ([]models.Story, error)
	getFn    func(id string) (*models.Story, error)
	createFn func(d models.Draft) (*models.AddResult, error)
	loginFn  func(email string) (*models.LoginResult, error)
	regFn    func(name string) (string, error)

	created   []models.Draft
	listCalls int
}

func (f *fakeClient) ListStories(ctx context.Context, token string) ([]models.Story, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn()
}

func (f *fakeClient) GetStory(ctx context.Context, id string, token string) (*models.Story, error) {
	f.mu.Lock()
	fn := f.getFn
	f.mu.Unlock()
	if fn == nil {
		return nil, &common.RemoteError{StatusCode: 404, Message: "Story not found"}
	}
	return fn(id)
}

func (f *fakeClient) CreateStory(ctx context.Context, d models.Draft, token string) (*models.AddResult, error) {
	f.mu.Lock()
	f.created = append(f.created, d)
	fn := f.createFn
	f.mu.Unlock()
	if fn == nil {
		return &models.AddResult{Message: "Story created successfully"}, nil
	}
	return fn(d)
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	if f.loginFn == nil {
		return &models.LoginResult{UserID: "user-1", Name: "Dimas", Token: "tok"}, nil
	}
	return f.loginFn(email)
}

func (f *fakeClient) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	if f.regFn == nil {
		return "User Created", nil
	}
	return f.regFn(name)
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) Created() []models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Draft(nil), f.created...)
}

// fakeSession stands in for session.Store.
type fakeSession struct {
	mu          sync.Mutex
	token       string
	user        *models.User
	invalidated int
	saveErr     error
}

func (s *fakeSession) Save(ctx context.Context, res models.LoginResult) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := res.User()
	s.token, s.user = res.Token, &u
	return nil
}

func (s *fakeSession) Token(context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *fakeSession) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *fakeSession) UserName() string {
	if u := s.CurrentUser(); u != nil {
		return u.Name
	}
	return ""
}

func (s *fakeSession) Invalidate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	s.invalidated++
	return nil
}

func (s *fakeSession) Invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

type switchable struct{ v atomic.Bool }

func (s *switchable) Online(context.Context) bool { return s.v.Load() }
func (s *switchable) set(online bool)             { s.v.Store(online) }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

type storyFixture struct {
	client   *fakeClient
	stories  *stories.SQLiteRepository
	queue    *syncqueue.Queue
	session  *fakeSession
	online   *switchable
	notifier *recordingNotifier
	svc      *storyService
}

func newStoryFixture(t *testing.T, online bool) *storyFixture {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &storyFixture{
		client:   &fakeClient{},
		stories:  stories.NewSQLiteRepository(db),
		session:  &fakeSession{token: "tok", user: &models.User{UserID: "user-1", Name: "Dimas"}},
		online:   &switchable{},
		notifier: &recordingNotifier{},
	}
	f.online.set(online)
	f.queue = syncqueue.New(f.client, f.stories, queue.NewSQLiteRepository(db), f.session, f.online, logging.NewNop())
	t.Cleanup(f.queue.Wait)

	svc := NewStoryService(f.client, f.stories, f.queue, f.session, f.online, f.notifier, logging.NewNop()).(*storyService)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func serverStory(id string) models.Story {
	return models.Story{
		ID:          id,
		Name:        "Dimas",
		Description: "story " + id,
		PhotoURL:    "https://story-api.dicoding.dev/images/stories/" + id + ".png",
		CreatedAt:   time.Date(2022, 1, 8, 6, 34, 18, 0, time.UTC),
		Lat:         models.Coordinate(-6.2),
		Lon:         models.Coordinate(106.8),
	}
}

func ids(ss []models.Story) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.ID)
	}
	return out
}

var errOffline = fmt.Errorf("%w: dial tcp: no route to host", common.ErrNetworkUnavailable)
