// Package cli implements the interactive FinKeeper client. It runs every
// store against a local sqlite-backed key-value file, the same way the web
// client ran them against browser storage.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/ametova/finkeeper/internal/budgets"
	"github.com/ametova/finkeeper/internal/cli/config"
	"github.com/ametova/finkeeper/internal/expenses"
	"github.com/ametova/finkeeper/internal/filex"
	"github.com/ametova/finkeeper/internal/goals"
	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/notes"
	"github.com/ametova/finkeeper/internal/notify"
	"github.com/ametova/finkeeper/internal/session"
)

type App struct {
	config   *config.Config
	sess     *session.Store
	expenses *expenses.Store
	budgets  *budgets.Store
	goals    *goals.Store
	notes    *notes.Store
	db       *sql.DB

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	path, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	kv, db, err := kvstore.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}

	out := os.Stdout
	notifier := notify.NewConsoleNotifier(out)

	sess := session.New(kv, notifier, logger, session.WithLoginDelay(c.LoginDelay))
	app := &App{
		config:   c,
		sess:     sess,
		expenses: expenses.New(kv, sess, notifier, logger),
		budgets:  budgets.New(kv, sess, notifier, logger),
		goals:    goals.New(kv, sess, notifier, logger),
		notes:    notes.New(kv, sess, notifier, logger),
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      out,
	}
	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.sess.Authenticated()
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	// Pick up a persisted session so a restart keeps the user logged in.
	if err := a.sess.Restore(ctx); err != nil {
		return err
	}

	a.Root(ctx)
	return nil
}
