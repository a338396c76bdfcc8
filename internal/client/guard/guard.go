// Package guard gates privileged views on a domain's resolved authentication
// state. A guard never redirects while resolution is pending: premature
// redirect on a slow network is the primary bug class this package exists to
// prevent.
package guard

import (
	"context"

	"github.com/haulbay/haulbay-cli/internal/client/identity"
)

// Decision is what a guard tells the caller to render.
type Decision int

const (
	// DecisionLoading: resolution is pending; show a transitional
	// affordance and wait.
	DecisionLoading Decision = iota
	// DecisionAllow: render the privileged view.
	DecisionAllow
	// DecisionRedirect: send the visitor to the domain's login view and
	// render nothing.
	DecisionRedirect
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirect:
		return "redirect"
	default:
		return "loading"
	}
}

// State is the provider surface a guard consumes.
type State struct {
	Authenticated bool
	Loading       bool
	// HasProfile guards against a boolean/snapshot desync; domains without
	// an extra snapshot check set it equal to Authenticated.
	HasProfile bool
}

// Decide maps a provider state to a rendering decision. Pure and total:
// Loading always wins over Redirect.
func Decide(s State) Decision {
	if s.Loading {
		return DecisionLoading
	}
	if s.Authenticated && s.HasProfile {
		return DecisionAllow
	}
	return DecisionRedirect
}

// Provider is the minimal identity surface guards need.
type Provider interface {
	IsAuthenticated() bool
	IsLoading() bool
	WaitResolved(ctx context.Context) error
}

// Guard binds a provider to a login destination.
type Guard struct {
	provider   Provider
	hasProfile func() bool
	// LoginPath is where DecisionRedirect points.
	LoginPath string
}

// NewDealerGuard guards dealer views. Beyond the authenticated flag it
// insists on a non-nil dealer snapshot.
func NewDealerGuard(p *identity.DealerProvider) *Guard {
	return &Guard{
		provider:   p,
		hasProfile: func() bool { return p.Dealer() != nil },
		LoginPath:  "/dealer/login",
	}
}

// NewAdminGuard guards admin views.
func NewAdminGuard(p *identity.AdminProvider) *Guard {
	return &Guard{
		provider:   p,
		hasProfile: p.IsAuthenticated,
		LoginPath:  "/admin/login",
	}
}

// Check returns the instantaneous decision without waiting.
func (g *Guard) Check() Decision {
	return Decide(State{
		Authenticated: g.provider.IsAuthenticated(),
		Loading:       g.provider.IsLoading(),
		HasProfile:    g.hasProfile(),
	})
}

// Resolve waits out the pending window, then returns the terminal decision.
// If ctx ends first, the decision is DecisionLoading along with ctx's error:
// still not a redirect.
func (g *Guard) Resolve(ctx context.Context) (Decision, error) {
	if err := g.provider.WaitResolved(ctx); err != nil {
		return DecisionLoading, err
	}
	return g.Check(), nil
}
