package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/storyshare/internal/client/client"
	"github.com/dmitrijs2005/storyshare/internal/client/config"
	"github.com/dmitrijs2005/storyshare/internal/client/connectivity"
	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/notify"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/queue"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/stories"
	"github.com/dmitrijs2005/storyshare/internal/client/services"
	"github.com/dmitrijs2005/storyshare/internal/client/session"
	"github.com/dmitrijs2005/storyshare/internal/client/storage"
	"github.com/dmitrijs2005/storyshare/internal/client/syncqueue"
	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/dmitrijs2005/storyshare/internal/filex"
	"github.com/dmitrijs2005/storyshare/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	logger logging.Logger

	authService  services.AuthService
	storyService services.StoryService

	db      *sql.DB
	monitor *connectivity.Monitor
	queue   *syncqueue.Queue
	hub     *notify.Hub

	mu   sync.Mutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerBaseURL, client.WithTimeout(c.RequestTimeout))

	sess := session.NewStore(db, logger)
	if err := sess.Load(ctx); err != nil {
		logger.Warn(ctx, "could not restore session", "err", err)
	}

	monitor := connectivity.NewMonitor(api, c.OnlineCheckInterval, logger)
	storyRepo := stories.NewSQLiteRepository(db)

	q := syncqueue.New(api, storyRepo, queue.NewSQLiteRepository(db), sess, monitor,
		logger.With("component", "syncqueue"), syncqueue.WithMaxAttempts(c.MaxSyncAttempts))
	if err := q.Load(ctx); err != nil {
		logger.Warn(ctx, "could not restore sync queue", "err", err)
	}

	var (
		hub      *notify.Hub
		notifier notify.Notifier = notify.Nop{}
	)
	if c.NotifyAddr != "" {
		hub = notify.NewHub(logger.With("component", "notify"))
		notifier = hub
	}

	return &App{
		config:       c,
		logger:       logger,
		authService:  services.NewAuthService(api, sess, logger),
		storyService: services.NewStoryService(api, storyRepo, q, sess, monitor, notifier, logger),
		db:           db,
		monitor:      monitor,
		queue:        q,
		hub:          hub,
		mode:         ModeOffline,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		printlnFn(Info.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func modeFor(online bool) Mode {
	if online {
		return ModeOnline
	}
	return ModeOffline
}

// Run starts the background watchers and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.monitor.OnChange(func(online bool) {
		a.setMode(modeFor(online))
		if online {
			a.queue.DrainAsync(ctx)
		}
	})
	a.setMode(modeFor(a.monitor.Check(ctx)))
	go a.monitor.Run(ctx)

	if a.hub != nil {
		go a.hub.Run(ctx)
		go func() {
			if err := a.hub.Serve(ctx, a.config.NotifyAddr); err != nil {
				a.logger.Error(ctx, "notification hub stopped", "err", err)
			}
		}()
	}
	if url := a.config.NotifySubscribeURL; url != "" {
		go func() {
			if err := notify.Listen(ctx, url, a.showNotification); err != nil {
				a.logger.Warn(ctx, "notification listener stopped", "err", err)
			}
		}()
	}

	printlnFn(Title.Sprint("Welcome to StoryShare CLI (type 'help' for commands)"))
	if a.isLoggedIn() && !a.authService.CheckAuthState(ctx) {
		printlnFn(Warning.Sprint(errorMessage(common.ErrUnauthenticated)))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close ends background syncs after their current request and releases the
// database.
func (a *App) Close() {
	a.queue.Stop()
	a.queue.Wait()
	if err := a.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		a.logger.Warn(context.Background(), "closing database", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.Token(context.Background()) != ""
}

func (a *App) getStatus() string {
	s := ""
	if u := a.authService.CurrentUser(); u != nil && a.isLoggedIn() {
		s = u.Name + " "
	}
	s += string(a.getMode())
	return fmt.Sprintf("(%s)", s)
}

func (a *App) showNotification(n models.Notification) {
	printlnFn(Info.Sprintf("\n[%s] %s", n.Title, n.Body))
}
