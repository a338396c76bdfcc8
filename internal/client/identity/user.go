package identity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/haulbay/haulbay-cli/internal/client/api"
	"github.com/haulbay/haulbay-cli/internal/client/storage"
	"github.com/haulbay/haulbay-cli/internal/logging"
	"github.com/sethvargo/go-retry"
)

// sessionRetryDelay spaces the one retry of the session check before the
// cache fallback kicks in.
const sessionRetryDelay = 300 * time.Millisecond

// DealerAdopter is the one sanctioned cross-domain coupling point: the
// unified login flow hands a discovered dealer credential to the dealer
// domain instead of adopting it itself. Nothing else may cross domains.
type DealerAdopter interface {
	AdoptToken(ctx context.Context, token string, dealer *api.Dealer)
}

// UserProvider owns the individual-user session: an implicit server cookie,
// plus a locally cached profile snapshot used only as a short-lived fallback
// when the session check fails at the transport layer.
type UserProvider struct {
	*resolver
	api    api.UserAPI
	store  storage.Store
	dealer DealerAdopter
	log    logging.Logger

	// reload is the application-level reset hook, the CLI analogue of a
	// full page reload. Invoked after logout and after a dealer handoff.
	reload func()

	user        *api.User
	provisional bool
}

// NewUserProvider builds a provider in the pending state. dealer receives
// the handoff when a unified login turns out to be a dealer account; reload
// may be nil.
func NewUserProvider(client api.UserAPI, store storage.Store, dealer DealerAdopter, reload func(), log logging.Logger) *UserProvider {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &UserProvider{
		resolver: newResolver(),
		api:      client,
		store:    store,
		dealer:   dealer,
		reload:   reload,
		log:      log.With("domain", "user"),
	}
}

// Init checks the server session. A rejection clears the cached profile and
// resolves anonymous: fresh login beats silently trusting stale cache. Only
// a transport failure (after one brief retry) falls back to the cached
// snapshot, provisionally.
func (p *UserProvider) Init(ctx context.Context) {
	gen := p.begin()

	var user *api.User
	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(sessionRetryDelay)), func(ctx context.Context) error {
		u, err := p.api.SessionUser(ctx)
		if err != nil {
			if api.IsTransport(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		user = u
		return nil
	})

	switch {
	case err == nil:
		// The commit decides whether the durable mirror happens, so a
		// stale session check cannot resurrect a cache blob a newer
		// logout already cleared.
		if p.finish(gen, ResolutionAuthenticated, func() {
			p.user = user
			p.provisional = false
		}) {
			p.mirror(ctx, user)
		} else {
			p.log.Debug(ctx, "stale resolution discarded")
		}

	case api.IsTransport(err):
		cached := p.cachedUser(ctx)
		if cached == nil {
			p.commitAnonymous(ctx, gen)
			return
		}
		p.log.Warn(ctx, "session check unreachable, using cached profile provisionally", "error", err)
		if !p.finish(gen, ResolutionAuthenticated, func() {
			p.user = cached
			p.provisional = true
		}) {
			p.log.Debug(ctx, "stale resolution discarded")
		}

	default:
		// Session expired or rejected: require a fresh login. The delete
		// happens only when the commit wins, so a stale rejection cannot
		// wipe a profile cached by a newer login.
		p.log.Info(ctx, "server session rejected, clearing cached profile", "error", err)
		if p.commitAnonymous(ctx, gen) {
			if err := p.store.Delete(ctx, storage.KeyCurrentUser); err != nil {
				p.log.Error(ctx, "failed to delete cached profile", "error", err)
			}
		}
	}
}

// Login posts credentials with session cookie participation. The response is
// polymorphic: an individual-user session is adopted here, while a dealer
// account is dispatched to the dealer domain and this provider adopts
// nothing. Failures resolve to false with the reason logged.
func (p *UserProvider) Login(ctx context.Context, email, password string) bool {
	if err := validLoginInput(email, password); err != nil {
		p.log.Info(ctx, "login input invalid", "error", err)
		return false
	}

	result, err := p.api.UserLogin(ctx, email, password)
	if err != nil {
		p.log.Info(ctx, "login failed", "error", err)
		return false
	}

	switch result.Kind {
	case LoginKindDealer:
		p.handoffDealer(ctx, result)
		return true
	default:
		p.mirror(ctx, result.User)
		p.force(ResolutionAuthenticated, func() {
			p.user = result.User
			p.provisional = false
		})
		p.log.Info(ctx, "user session adopted", "user", result.User.Email)
		return true
	}
}

// handoffDealer forwards a dealer credential discovered by the unified login
// to the dealer domain, then resets the application so the dealer provider
// initializes cleanly from its own rules.
func (p *UserProvider) handoffDealer(ctx context.Context, result *api.LoginResult) {
	p.log.Info(ctx, "unified login resolved to a dealer account, handing off")
	p.dealer.AdoptToken(ctx, result.Token, result.Dealer)

	if result.User != nil {
		if blob, err := json.Marshal(result.User); err == nil {
			if err := p.store.Set(ctx, storage.KeyCurrentDealerUser, string(blob)); err != nil {
				p.log.Warn(ctx, "failed to cache dealer user record", "error", err)
			}
		}
	}

	if p.reload != nil {
		p.reload()
	}
}

// Logout invalidates the server session best-effort, unconditionally clears
// local state, and triggers the reload hook so nothing anywhere retains
// identity-derived state.
func (p *UserProvider) Logout(ctx context.Context) {
	if err := p.api.UserLogout(ctx); err != nil {
		p.log.Warn(ctx, "server logout failed, clearing locally anyway", "error", err)
	}
	if err := p.store.Delete(ctx, storage.KeyCurrentUser); err != nil {
		p.log.Error(ctx, "failed to delete cached profile", "error", err)
	}
	p.force(ResolutionAnonymous, func() {
		p.user = nil
		p.provisional = false
	})
	if p.reload != nil {
		p.reload()
	}
}

// mirror caches the profile snapshot for the provisional-restart path.
func (p *UserProvider) mirror(ctx context.Context, user *api.User) {
	blob, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := p.store.Set(ctx, storage.KeyCurrentUser, string(blob)); err != nil {
		p.log.Warn(ctx, "failed to cache profile", "error", err)
	}
}

// cachedUser loads the mirrored snapshot. A malformed blob is treated as
// absent and removed, not as an error.
func (p *UserProvider) cachedUser(ctx context.Context) *api.User {
	blob, err := p.store.Get(ctx, storage.KeyCurrentUser)
	if err != nil || blob == "" {
		return nil
	}
	var user api.User
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		p.log.Warn(ctx, "cached profile malformed, discarding")
		_ = p.store.Delete(ctx, storage.KeyCurrentUser)
		return nil
	}
	return &user
}

func (p *UserProvider) commitAnonymous(ctx context.Context, gen uint64) bool {
	ok := p.finish(gen, ResolutionAnonymous, func() {
		p.user = nil
		p.provisional = false
	})
	if !ok {
		p.log.Debug(ctx, "stale resolution discarded")
	}
	return ok
}

// User returns the current profile snapshot, nil while anonymous or pending.
func (p *UserProvider) User() *api.User {
	var u *api.User
	p.read(func() { u = p.user })
	return u
}

// Provisional reports whether the current snapshot came from the cache
// fallback rather than a confirmed server session.
func (p *UserProvider) Provisional() bool {
	var prov bool
	p.read(func() { prov = p.provisional })
	return prov
}

func (p *UserProvider) IsAuthenticated() bool {
	var ok bool
	p.read(func() { ok = p.res == ResolutionAuthenticated && p.user != nil })
	return ok
}

func (p *UserProvider) IsLoading() bool {
	return p.resolution() == ResolutionPending
}

// WaitResolved blocks until the domain leaves pending or ctx ends.
func (p *UserProvider) WaitResolved(ctx context.Context) error {
	return p.waitResolved(ctx)
}

// LoginKind aliases the api tags so callers dispatching on login outcomes
// need not import the api package.
const (
	LoginKindUser   = api.LoginKindUser
	LoginKindDealer = api.LoginKindDealer
)
