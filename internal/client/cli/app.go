package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/haulbay/haulbay-cli/internal/client/api"
	"github.com/haulbay/haulbay-cli/internal/client/config"
	"github.com/haulbay/haulbay-cli/internal/client/guard"
	"github.com/haulbay/haulbay-cli/internal/client/identity"
	"github.com/haulbay/haulbay-cli/internal/client/saved"
	"github.com/haulbay/haulbay-cli/internal/client/storage"
	"github.com/haulbay/haulbay-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// dealerIdentity, userIdentity and adminIdentity are the slices of the
// identity providers the command handlers need. The concrete providers
// satisfy them; tests can provide lightweight fakes.
type dealerIdentity interface {
	Init(ctx context.Context)
	Login(ctx context.Context, email, password string) bool
	Logout(ctx context.Context)
	Dealer() *api.Dealer
	IsAuthenticated() bool
	IsLoading() bool
	WaitResolved(ctx context.Context) error
}

type userIdentity interface {
	Init(ctx context.Context)
	Login(ctx context.Context, email, password string) bool
	Logout(ctx context.Context)
	User() *api.User
	Provisional() bool
	IsAuthenticated() bool
	IsLoading() bool
	WaitResolved(ctx context.Context) error
}

type adminIdentity interface {
	Init(ctx context.Context)
	Login(ctx context.Context, email, password string) bool
	Logout(ctx context.Context)
	Admin() *api.Admin
	IsAuthenticated() bool
	IsLoading() bool
	WaitResolved(ctx context.Context) error
}

// accessGuard is the slice of guard.Guard the privileged commands need.
type accessGuard interface {
	Resolve(ctx context.Context) (guard.Decision, error)
}

// App wires the HTTP client, the SQLite profile store, the three identity
// providers, their route guards and the saved-listing engine into the
// interactive CLI.
type App struct {
	config *config.Config
	log    logging.Logger

	db    *sql.DB
	store storage.Store

	dealer dealerIdentity
	user   userIdentity
	admin  adminIdentity

	dealerGuard accessGuard
	adminGuard  accessGuard

	saved *saved.Engine

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the profile database, mints or restores the device
// identifier, and builds the full identity and saved-listing stack on top
// of one shared REST client.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	db, err := storage.OpenProfileDB(ctx, cfg.ProfileDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile database: %w", err)
	}
	store := storage.NewSQLiteStore(db)

	deviceID, err := ensureDeviceID(ctx, store)
	if err != nil {
		db.Close()
		return nil, err
	}

	client, err := api.NewREST(cfg.ServerBaseURL,
		api.WithLogger(log),
		api.WithDeviceID(deviceID),
		api.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{
		config: cfg,
		log:    log,
		db:     db,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	dealer := identity.NewDealerProvider(client, store, log)
	user := identity.NewUserProvider(client, store, dealer, app.reload, log)
	admin := identity.NewAdminProvider(client, log)

	app.dealer = dealer
	app.user = user
	app.admin = admin
	app.dealerGuard = guard.NewDealerGuard(dealer)
	app.adminGuard = guard.NewAdminGuard(admin)

	// Saved listings belong to the individual-user domain only.
	app.saved = saved.NewEngine(client, store, user.IsAuthenticated, &consoleNotifier{out: app.out}, log)

	return app, nil
}

// ensureDeviceID returns the stored device identifier, minting and
// persisting a fresh one on first run.
func ensureDeviceID(ctx context.Context, store storage.Store) (string, error) {
	id, err := store.Get(ctx, storage.KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := store.Set(ctx, storage.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("failed to persist device id: %w", err)
	}
	return id, nil
}

// reload is the CLI analogue of a full page reload: every identity domain
// re-resolves from stored credentials and the saved-listing cache is
// dropped, so nothing retains state derived from a previous identity.
func (a *App) reload() {
	ctx := context.Background()
	a.log.Debug(ctx, "reloading identity state")
	a.dealer.Init(ctx)
	a.admin.Init(ctx)
	if a.saved != nil {
		a.saved.Invalidate()
	}
}

// resolveIdentity runs the initial resolution cycle for all three domains.
// Each domain starts pending and settles before the prompt appears.
func (a *App) resolveIdentity(ctx context.Context) {
	a.dealer.Init(ctx)
	a.user.Init(ctx)
	a.admin.Init(ctx)
}

// StartSessionWatcher periodically re-validates a provisional user session,
// so a cached-profile fallback converges to a server-confirmed state (or to
// anonymous) once the backend is reachable again.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.user.Provisional() {
				a.log.Debug(ctx, "rechecking provisional session")
				a.user.Init(ctx)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Run resolves identity and hands control to the REPL. It blocks until the
// user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.resolveIdentity(ctx)

	if a.config.SessionRecheckInterval > 0 {
		go a.StartSessionWatcher(ctx, a.config.SessionRecheckInterval)
	}

	fmt.Fprintln(a.out, "HaulBay CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the profile database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.user.IsAuthenticated() || a.dealer.IsAuthenticated() || a.admin.IsAuthenticated()
}
