package cli

import (
	"context"
	"fmt"

	"github.com/haulbay/haulbay-cli/internal/client/guard"
)

// getStatus renders the prompt fragment: the signed-in principal, or
// "resolving" while any domain is still pending, or empty when anonymous.
func (a *App) getStatus() string {
	if a.dealer.IsLoading() || a.user.IsLoading() {
		return "(resolving)"
	}

	switch {
	case a.dealer.IsAuthenticated():
		return fmt.Sprintf("(dealer %s)", dealerName(a))
	case a.admin.IsAuthenticated():
		return "(admin)"
	case a.user.IsAuthenticated():
		s := fmt.Sprintf("(%s", userName(a))
		if a.user.Provisional() {
			s += ", offline"
		}
		return s + ")"
	}
	return ""
}

// Status prints the resolution state of all three identity domains.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintln(a.out, "Identity:")

	switch {
	case a.dealer.IsLoading():
		fmt.Fprintln(a.out, "  dealer: resolving")
	case a.dealer.IsAuthenticated():
		fmt.Fprintf(a.out, "  dealer: %s\n", dealerName(a))
	default:
		fmt.Fprintln(a.out, "  dealer: anonymous")
	}

	switch {
	case a.user.IsLoading():
		fmt.Fprintln(a.out, "  user:   resolving")
	case a.user.IsAuthenticated():
		if a.user.Provisional() {
			fmt.Fprintf(a.out, "  user:   %s (cached, server unreachable)\n", userName(a))
		} else {
			fmt.Fprintf(a.out, "  user:   %s\n", userName(a))
		}
	default:
		fmt.Fprintln(a.out, "  user:   anonymous")
	}

	switch {
	case a.admin.IsLoading():
		fmt.Fprintln(a.out, "  admin:  resolving")
	case a.admin.IsAuthenticated():
		fmt.Fprintf(a.out, "  admin:  %s\n", a.admin.Admin().Email)
	default:
		fmt.Fprintln(a.out, "  admin:  anonymous")
	}

	return nil
}

// Dashboard is the dealer-guarded view. While resolution is pending it
// waits instead of redirecting; only a settled anonymous state redirects to
// the dealer login.
func (a *App) Dashboard(ctx context.Context) error {
	decision, err := a.dealerGuard.Resolve(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Still resolving identity, try again.")
		return err
	}

	if decision == guard.DecisionRedirect {
		fmt.Fprintln(a.out, "Sign in as a dealer first (dealer-login).")
		return nil
	}

	d := a.dealer.Dealer()
	fmt.Fprintf(a.out, "Dealer dashboard: %s\n", d.CompanyName)
	fmt.Fprintf(a.out, "  email: %s\n", d.Email)
	if d.City != "" {
		fmt.Fprintf(a.out, "  location: %s, %s\n", d.City, d.State)
	}
	return nil
}

// AdminPanel is the admin-guarded view.
func (a *App) AdminPanel(ctx context.Context) error {
	decision, err := a.adminGuard.Resolve(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Still resolving identity, try again.")
		return err
	}

	if decision == guard.DecisionRedirect {
		fmt.Fprintln(a.out, "Sign in as an admin first (admin-login).")
		return nil
	}

	ad := a.admin.Admin()
	fmt.Fprintf(a.out, "Admin panel: %s (%s)\n", ad.Email, ad.Role)
	return nil
}
