// Package server initializes and runs the REST API server. It opens the
// configured key-value backend, wires the session store and HTTP handlers,
// and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ametova/finkeeper/internal/filex"
	"github.com/ametova/finkeeper/internal/httpapi"
	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/notify"
	"github.com/ametova/finkeeper/internal/server/config"
	"github.com/ametova/finkeeper/internal/session"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.Server
	db     *sql.DB
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	kv, db, err := openBackend(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	sess := session.New(kv, notify.NewLogNotifier(logger), logger,
		session.WithLoginDelay(c.LoginDelay))
	api := httpapi.NewServer(sess, kv, logger, []byte(c.SecretKey), c.TokenValidityDuration)

	return &App{config: c, logger: logger, api: api, db: db}, nil
}

// openBackend opens the key-value store named by the config. For the SQL
// backends it also returns the underlying handle so it can be closed on
// shutdown.
func openBackend(ctx context.Context, c *config.Config) (kvstore.Store, *sql.DB, error) {
	switch c.Backend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), nil, nil
	case config.BackendSQLite:
		path, err := filex.EnsureParentDir(c.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s, db, err := kvstore.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return s, db, nil
	case config.BackendPostgres:
		s, db, err := kvstore.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, db, nil
	case config.BackendS3:
		s, err := kvstore.OpenS3(ctx, kvstore.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr, "backend", app.config.Backend)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		app.logger.Error(ctx, "server error", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
