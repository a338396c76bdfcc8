package identity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/haulbay/haulbay-cli/internal/client/api"
	"github.com/haulbay/haulbay-cli/internal/client/storage"
	"github.com/haulbay/haulbay-cli/internal/logging"
)

// DealerProvider owns the bearer-token dealer session: token lifecycle,
// profile hydration, and the dealerToken storage key. The token is the only
// credential the client can read directly; it is either accepted by the
// server or cleared, never left in doubt past one resolution cycle.
type DealerProvider struct {
	*resolver
	api   api.DealerAPI
	store storage.Store
	log   logging.Logger

	dealer *api.Dealer
	token  string
}

// NewDealerProvider builds a provider in the pending state. Call Init to
// resolve the stored credential.
func NewDealerProvider(client api.DealerAPI, store storage.Store, log logging.Logger) *DealerProvider {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &DealerProvider{
		resolver: newResolver(),
		api:      client,
		store:    store,
		log:      log.With("domain", "dealer"),
	}
}

// Init resolves the stored token, fetching the profile when one exists.
// Any profile failure (rejection, transport, malformed) means the token is
// invalid: local state is fully cleared and the domain fails closed to
// anonymous rather than a half-authenticated state.
func (p *DealerProvider) Init(ctx context.Context) {
	gen := p.begin()

	token, err := p.store.Get(ctx, storage.KeyDealerToken)
	if err != nil {
		p.log.Error(ctx, "failed to read stored token", "error", err)
		token = ""
	}
	if token == "" {
		p.commitAnonymous(ctx, gen)
		return
	}

	if tokenExpired(token, time.Now()) {
		p.log.Info(ctx, "stored token already expired, clearing without profile fetch")
		if p.commitAnonymous(ctx, gen) {
			p.clearStoredCredential(ctx)
		}
		return
	}

	dealer, err := p.api.DealerProfile(ctx, token)
	if err != nil {
		p.log.Info(ctx, "profile fetch failed, clearing token", "error", err)
		// A stale resolution must not wipe a credential stored by a newer
		// login, so the commit decides whether the clear happens.
		if p.commitAnonymous(ctx, gen) {
			p.clearStoredCredential(ctx)
		}
		return
	}

	if !p.finish(gen, ResolutionAuthenticated, func() {
		p.dealer = dealer
		p.token = token
	}) {
		p.log.Debug(ctx, "stale resolution discarded")
	}
}

// Login posts credentials and, on success, stores the token and adopts the
// returned profile in one atomic update, so no observer can see a token
// without a dealer. It never returns an error: failures resolve to false with the
// reason logged.
func (p *DealerProvider) Login(ctx context.Context, email, password string) bool {
	if err := validLoginInput(email, password); err != nil {
		p.log.Info(ctx, "login input invalid", "error", err)
		return false
	}

	session, err := p.api.DealerLogin(ctx, email, password)
	if err != nil {
		p.log.Info(ctx, "login failed", "error", err)
		return false
	}

	p.adopt(ctx, session.Token, &session.Dealer)
	return true
}

// AdoptToken atomically adopts a token and profile obtained elsewhere, e.g.
// when the unified sign-in flow discovers the account is actually a dealer.
func (p *DealerProvider) AdoptToken(ctx context.Context, token string, dealer *api.Dealer) {
	p.adopt(ctx, token, dealer)
}

func (p *DealerProvider) adopt(ctx context.Context, token string, dealer *api.Dealer) {
	if err := p.store.Set(ctx, storage.KeyDealerToken, token); err != nil {
		p.log.Warn(ctx, "failed to persist token, session will not survive restart", "error", err)
	}
	if blob, err := json.Marshal(dealer); err == nil {
		if err := p.store.Set(ctx, storage.KeyCurrentDealer, string(blob)); err != nil {
			p.log.Warn(ctx, "failed to cache dealer profile", "error", err)
		}
	}

	p.force(ResolutionAuthenticated, func() {
		p.dealer = dealer
		p.token = token
	})
	p.log.Info(ctx, "dealer session adopted", "dealer", dealer.CompanyName)
}

// Logout invalidates the session server-side on a best-effort basis, then
// unconditionally clears local state. Logout always succeeds locally.
func (p *DealerProvider) Logout(ctx context.Context) {
	var token string
	p.read(func() { token = p.token })

	if token != "" {
		if err := p.api.DealerLogout(ctx, token); err != nil {
			p.log.Warn(ctx, "server logout failed, clearing locally anyway", "error", err)
		}
	}
	p.ClearAuthState(ctx)
}

// ClearAuthState forcefully resets local credentials without a server round
// trip. Used when the server rejects the token, to prevent retry loops.
func (p *DealerProvider) ClearAuthState(ctx context.Context) {
	p.clearStoredCredential(ctx)
	p.force(ResolutionAnonymous, func() {
		p.dealer = nil
		p.token = ""
	})
}

func (p *DealerProvider) clearStoredCredential(ctx context.Context) {
	if err := p.store.Delete(ctx, storage.KeyDealerToken); err != nil {
		p.log.Error(ctx, "failed to delete stored token", "error", err)
	}
	if err := p.store.Delete(ctx, storage.KeyCurrentDealer); err != nil {
		p.log.Error(ctx, "failed to delete cached dealer profile", "error", err)
	}
}

func (p *DealerProvider) commitAnonymous(ctx context.Context, gen uint64) bool {
	ok := p.finish(gen, ResolutionAnonymous, func() {
		p.dealer = nil
		p.token = ""
	})
	if !ok {
		p.log.Debug(ctx, "stale resolution discarded")
	}
	return ok
}

// Dealer returns the current profile snapshot, nil while anonymous or
// pending.
func (p *DealerProvider) Dealer() *api.Dealer {
	var d *api.Dealer
	p.read(func() { d = p.dealer })
	return d
}

// Token returns the current bearer token, empty while anonymous or pending.
func (p *DealerProvider) Token() string {
	var t string
	p.read(func() { t = p.token })
	return t
}

func (p *DealerProvider) IsAuthenticated() bool {
	var ok bool
	p.read(func() { ok = p.res == ResolutionAuthenticated && p.dealer != nil })
	return ok
}

func (p *DealerProvider) IsLoading() bool {
	return p.resolution() == ResolutionPending
}

// WaitResolved blocks until the domain leaves pending or ctx ends.
func (p *DealerProvider) WaitResolved(ctx context.Context) error {
	return p.waitResolved(ctx)
}
