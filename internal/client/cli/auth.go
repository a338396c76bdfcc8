package cli

import (
	"context"
	"fmt"

	"github.com/haulbay/haulbay-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// promptCredentials reads an email and password pair. The caller must wipe
// the password when done.
func (a *App) promptCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Login runs the unified sign-in flow. The backend decides what the account
// is: an individual-user session is adopted by the user domain, while a
// dealer account is handed off to the dealer domain. Either way the outcome
// is reported from the providers' post-login state, not guessed here.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.user.Login(ctx, email, string(password)) {
		fmt.Fprintln(a.out, "Sign in failed.")
		return nil
	}

	switch {
	case a.dealer.IsAuthenticated():
		fmt.Fprintf(a.out, "Signed in as dealer %s\n", dealerName(a))
	case a.user.IsAuthenticated():
		fmt.Fprintf(a.out, "Signed in as %s\n", userName(a))
	}
	return nil
}

// DealerLogin authenticates directly against the dealer endpoint.
func (a *App) DealerLogin(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.dealer.Login(ctx, email, string(password)) {
		fmt.Fprintln(a.out, "Dealer sign in failed.")
		return nil
	}

	fmt.Fprintf(a.out, "Signed in as dealer %s\n", dealerName(a))
	return nil
}

// AdminLogin authenticates against the admin endpoint. Success here means
// the follow-up profile validation passed as well.
func (a *App) AdminLogin(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.admin.Login(ctx, email, string(password)) {
		fmt.Fprintln(a.out, "Admin sign in failed.")
		return nil
	}

	fmt.Fprintln(a.out, "Signed in as admin.")
	return nil
}

// Logout signs out every authenticated domain. Each domain's logout is
// independent: a server-side failure in one still clears its local state
// and does not stop the others.
func (a *App) Logout(ctx context.Context) error {
	signedOut := false

	if a.user.IsAuthenticated() {
		a.user.Logout(ctx)
		fmt.Fprintln(a.out, "Signed out of user session.")
		signedOut = true
	}
	if a.dealer.IsAuthenticated() {
		a.dealer.Logout(ctx)
		fmt.Fprintln(a.out, "Signed out of dealer session.")
		signedOut = true
	}
	if a.admin.IsAuthenticated() {
		a.admin.Logout(ctx)
		fmt.Fprintln(a.out, "Signed out of admin session.")
		signedOut = true
	}

	if !signedOut {
		fmt.Fprintln(a.out, "Not signed in.")
	}
	return nil
}

func dealerName(a *App) string {
	if d := a.dealer.Dealer(); d != nil {
		return d.CompanyName
	}
	return "(unknown)"
}

func userName(a *App) string {
	if u := a.user.User(); u != nil {
		return u.Email
	}
	return "(unknown)"
}
