// Package cli implements the interactive blocnotes client: a small REPL over
// the note store, the session service and the sync engine.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/raidellg/blocnotes/internal/client/config"
	"github.com/raidellg/blocnotes/internal/client/filecache"
	"github.com/raidellg/blocnotes/internal/client/gateway"
	"github.com/raidellg/blocnotes/internal/client/repositories/state"
	"github.com/raidellg/blocnotes/internal/client/services"
	"github.com/raidellg/blocnotes/internal/client/store"
	"github.com/raidellg/blocnotes/internal/filex"
	"github.com/raidellg/blocnotes/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	// ModeDisabled means no remote is configured; the client is local-only.
	ModeDisabled Mode = "disabled"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	session  *services.SessionService
	syncSvc  *services.SyncService
	store    *store.NoteStore
	rows     *gateway.PostgresRowStore
	Mode     Mode
	reader   *bufio.Reader
	userName string

	migrateOnce sync.Once
	migrateErr  error
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	db, err := state.Open(ctx, c.LocalDBPath)
	if err != nil {
		return nil, err
	}
	repo := state.NewSQLiteRepository(db)

	sessionSvc := services.NewSessionService(repo, c.JWTSecret, log)

	mode := ModeDisabled
	var rows *gateway.PostgresRowStore
	if c.RemoteDSN != "" {
		rows, err = gateway.OpenPostgres(c.RemoteDSN)
		if err != nil {
			return nil, err
		}
		mode = ModeOffline
	}

	var blobs gateway.BlobStore
	var downloader filecache.Downloader
	if c.S3Endpoint != "" || c.S3AccessKey != "" {
		s3store, err := gateway.NewS3BlobStore(ctx, gateway.S3Config{
			Region:       c.S3Region,
			BaseEndpoint: c.S3Endpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
		}, sessionSvc, c.RequestTimeout, log)
		if err != nil {
			return nil, err
		}
		blobs = s3store
		downloader = s3store
	}

	cacheRoot, err := filex.EnsureDir(c.CacheDir)
	if err != nil {
		return nil, err
	}
	cache := filecache.New(cacheRoot, downloader, log)

	st := store.New(repo, cache, log)
	if err := st.Load(ctx); err != nil {
		return nil, err
	}

	var syncSvc *services.SyncService
	if rows != nil && blobs != nil {
		syncSvc = services.NewSyncService(sessionSvc, rows, blobs, cache, st, log)
	}

	app := &App{
		config:  c,
		log:     log,
		session: sessionSvc,
		syncSvc: syncSvc,
		store:   st,
		rows:    rows,
		Mode:    mode,
		reader:  bufio.NewReader(os.Stdin),
	}

	// restore identity from a persisted session
	if owner, err := sessionSvc.CurrentOwner(ctx); err == nil {
		app.userName = owner.Email
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.rows != nil {
			_ = a.rows.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// ensureMigrated provisions the remote schema once per process, right before
// the first sync.
func (a *App) ensureMigrated(ctx context.Context) error {
	a.migrateOnce.Do(func() {
		a.migrateErr = a.rows.Migrate(ctx)
	})
	return a.migrateErr
}

// StartOnlineStatusWatcher periodically probes the row store and flips the
// mode between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if a.rows == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.rows.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
