package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dkurbatovs/shopcart/internal/cart"
	"github.com/dkurbatovs/shopcart/internal/catalog"
	"github.com/dkurbatovs/shopcart/internal/checkout"
	"github.com/dkurbatovs/shopcart/internal/config"
	"github.com/dkurbatovs/shopcart/internal/localdb"
	"github.com/dkurbatovs/shopcart/internal/logging"
	"github.com/dkurbatovs/shopcart/internal/models"
	"github.com/dkurbatovs/shopcart/internal/session"
	"github.com/dkurbatovs/shopcart/internal/store"
	"github.com/dkurbatovs/shopcart/internal/ui"
)

// App wires the storefront services behind the REPL.
type App struct {
	config   *config.Config
	sessions *session.Manager
	catalog  *catalog.Reader
	cart     *cart.Aggregate
	checkout *checkout.Orchestrator
	notifier ui.Notifier
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// lastItems is the catalog listing "add <n>" indexes into.
	lastItems []models.Item

	closers []func() error
}

// NewApp opens the remote store and the local database, runs migrations,
// and wires the services. Cart mutations and checkouts are serialized per
// account in-process; the cross-process races stay open.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	remote, err := store.NewPostgres(cfg.StoreDSN)
	if err != nil {
		return nil, err
	}
	if err := remote.RunMigrations(ctx); err != nil {
		remote.Close()
		return nil, err
	}

	local, err := localdb.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		remote.Close()
		return nil, err
	}

	sessions := session.NewManager(remote, session.NewSQLiteStore(local), log, cfg.TokenTTL)
	carts := cart.New(remote, cart.WithAccountSerialization())

	app := &App{
		config:   cfg,
		sessions: sessions,
		catalog:  catalog.NewReader(remote),
		cart:     carts,
		checkout: checkout.NewOrchestrator(remote, carts, sessions, log),
		notifier: ui.NewConsole(os.Stdout, os.Stdin),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []func() error{remote.Close, local.Close},
	}
	return app, nil
}

// Close releases the store and local database handles.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// currentSession is the authentication gate for cart and checkout commands.
func (a *App) currentSession(ctx context.Context) *models.Session {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to read local session", "error", err)
		return nil
	}
	return sess
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.currentSession(ctx) != nil
}
