package identity

import (
	"context"

	"github.com/haulbay/haulbay-cli/internal/client/api"
	"github.com/haulbay/haulbay-cli/internal/logging"
)

// AdminProvider owns the administrator session: an implicit server cookie in
// a credential namespace fully separate from the dealer and user domains.
// Admin identity is always freshly validated; there is no cache fallback of
// any kind.
type AdminProvider struct {
	*resolver
	api api.AdminAPI
	log logging.Logger

	admin   *api.Admin
	lastErr error
}

func NewAdminProvider(client api.AdminAPI, log logging.Logger) *AdminProvider {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AdminProvider{
		resolver: newResolver(),
		api:      client,
		log:      log.With("domain", "admin"),
	}
}

// Init validates the admin session against the server. Every failure class
// resolves to anonymous.
func (p *AdminProvider) Init(ctx context.Context) {
	gen := p.begin()

	admin, err := p.api.AdminProfile(ctx)
	if err != nil {
		p.log.Debug(ctx, "admin session check failed", "error", err)
		if !p.finish(gen, ResolutionAnonymous, func() {
			p.admin = nil
			p.lastErr = err
		}) {
			p.log.Debug(ctx, "stale resolution discarded")
		}
		return
	}

	if !p.finish(gen, ResolutionAuthenticated, func() {
		p.admin = admin
		p.lastErr = nil
	}) {
		p.log.Debug(ctx, "stale resolution discarded")
	}
}

// Login posts credentials and, on success, revalidates the profile so the
// snapshot comes from the server, not from the login response. Returns false
// on any failure, reason logged.
func (p *AdminProvider) Login(ctx context.Context, email, password string) bool {
	if err := validLoginInput(email, password); err != nil {
		p.log.Info(ctx, "login input invalid", "error", err)
		return false
	}

	if err := p.api.AdminLogin(ctx, email, password); err != nil {
		p.log.Info(ctx, "login failed", "error", err)
		return false
	}

	p.Init(ctx)
	return p.IsAuthenticated()
}

// Logout invalidates the session best-effort and clears the snapshot.
func (p *AdminProvider) Logout(ctx context.Context) {
	if err := p.api.AdminLogout(ctx); err != nil {
		p.log.Warn(ctx, "server logout failed, clearing locally anyway", "error", err)
	}
	p.force(ResolutionAnonymous, func() {
		p.admin = nil
		p.lastErr = nil
	})
}

// Admin returns the current profile snapshot, nil while anonymous or pending.
func (p *AdminProvider) Admin() *api.Admin {
	var a *api.Admin
	p.read(func() { a = p.admin })
	return a
}

// IsAuthenticated is strictly "profile present and last check not errored".
func (p *AdminProvider) IsAuthenticated() bool {
	var ok bool
	p.read(func() { ok = p.res == ResolutionAuthenticated && p.admin != nil && p.lastErr == nil })
	return ok
}

func (p *AdminProvider) IsLoading() bool {
	return p.resolution() == ResolutionPending
}

// WaitResolved blocks until the domain leaves pending or ctx ends.
func (p *AdminProvider) WaitResolved(ctx context.Context) error {
	return p.waitResolved(ctx)
}
