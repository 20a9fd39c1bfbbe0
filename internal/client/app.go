// Package client wires configuration, stores, and the sync engine into a
// runnable application.
package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/lockfile"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/service"
	"github.com/MKhiriev/go-mail-sync/internal/store"
)

type App struct {
	cfg    *config.StructuredConfig
	engine service.SyncEngine
	db     *store.DB
	logger *logger.Logger
}

// NewApp builds the full application from cfg: the HTTP remote store, the
// sqlite-backed mailbox and state stores, and the sync engine on top.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	remote, err := adapter.NewHTTPRemoteStore(cfg.Remote, log)
	if err != nil {
		return nil, fmt.Errorf("create remote store: %w", err)
	}

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local index: %w", err)
	}

	mailbox, err := store.NewMailboxStore(db, cfg.Storage.MaildirPath, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create mailbox store: %w", err)
	}

	engine := service.NewSyncEngine(remote, mailbox, store.NewStateStore(db), cfg.Sync, log)

	return &App{cfg: cfg, engine: engine, db: db, logger: log}, nil
}

// Run performs one synchronization pass under the instance lock. Returns
// [lockfile.ErrAlreadyRunning] unchanged when another instance holds the
// lock, so the caller can treat that case as a clean exit.
func (a *App) Run(ctx context.Context) error {
	lock, err := lockfile.Acquire(a.cfg.Storage.StatusDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to release instance lock")
		}
	}()

	return a.engine.Run(ctx)
}

// Close releases the local index connection.
func (a *App) Close() error {
	return a.db.Close()
}
