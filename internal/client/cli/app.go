package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/config"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/services"
	"github.com/dmitrijs2005/fileshare/internal/client/session"
	"github.com/dmitrijs2005/fileshare/internal/client/store"
	"github.com/dmitrijs2005/fileshare/internal/filex"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// pingTimeout bounds the liveness probe used by status.
const pingTimeout = 3 * time.Second

// App is the CLI runtime: one session manager shared by every command.
type App struct {
	config       *config.Config
	session      *session.Manager
	authService  services.AuthService
	shareService services.ShareService
	metrics      prometheus.Gatherer
	logger       logging.Logger

	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB

	// lastShare is the most recent upload; share settings apply to it.
	lastShare *models.ShareResult
	// interactive is set while the REPL owns the terminal.
	interactive bool
}

// NewApp opens the session store, builds the API client and services and
// restores the persisted session. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	st, db, err := openStore(ctx, cfg.StorePath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	apiClient, err := client.NewHTTPClient(cfg.ServerURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRecorder(client.NewPrometheusRecorder(reg)),
		client.WithLogger(logger.With("component", "client")),
	)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	m := session.NewManager(st, logger.With("component", "session"))
	if err := m.Initialize(ctx); err != nil {
		closeDB(db)
		return nil, err
	}

	a := &App{
		config:       cfg,
		session:      m,
		authService:  services.NewAuthService(apiClient, m),
		shareService: services.NewShareService(apiClient, m),
		metrics:      reg,
		logger:       logger,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		db:           db,
	}
	a.wireSession()
	return a, nil
}

// wireSession connects the gate and the login redirect to the terminal.
func (a *App) wireSession() {
	a.session.SetNavigator(session.NavigatorFunc(a.toLogin))
	a.session.OnGate(func(visible bool) {
		if !visible {
			return
		}
		fmt.Fprintln(a.out, gateBanner(a.staleUser()))
		if a.interactive {
			fmt.Fprintln(a.out, gateHint)
		}
	})
}

func openStore(ctx context.Context, path string) (store.Store, *sql.DB, error) {
	if path == "" {
		return store.NewMemoryStore(), nil, nil
	}
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}
	db, err := store.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return store.NewSQLiteStore(db), db, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// Close releases the session store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// StartExpiryWatcher checks the local credential expiry until ctx is done.
func (a *App) StartExpiryWatcher(ctx context.Context) {
	session.NewExpiryWatcher(a.session, a.config.ExpiryCheckInterval, a.logger.With("component", "watcher")).Run(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

func (a *App) gateVisible() bool {
	return a.session.GateVisible()
}

func (a *App) status() string {
	s := a.session.Snapshot()
	switch {
	case a.session.GateVisible():
		return "expired"
	case s.IsAuthenticated():
		return s.Username()
	default:
		return ""
	}
}
