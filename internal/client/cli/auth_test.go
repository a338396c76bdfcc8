package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/haulbay/haulbay-cli/internal/client/api"
	"github.com/haulbay/haulbay-cli/internal/client/guard"
	"github.com/haulbay/haulbay-cli/internal/logging"
)

func stubInputs(t *testing.T, email string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeDealerProvider struct {
	auth    bool
	loading bool
	dealer  *api.Dealer

	loginOK      bool
	loginEmail   string
	logoutCalled bool
}

func (f *fakeDealerProvider) Init(context.Context) {}
func (f *fakeDealerProvider) Login(_ context.Context, email, _ string) bool {
	f.loginEmail = email
	if f.loginOK {
		f.auth = true
	}
	return f.loginOK
}
func (f *fakeDealerProvider) Logout(context.Context) {
	f.logoutCalled = true
	f.auth = false
	f.dealer = nil
}
func (f *fakeDealerProvider) Dealer() *api.Dealer           { return f.dealer }
func (f *fakeDealerProvider) IsAuthenticated() bool         { return f.auth }
func (f *fakeDealerProvider) IsLoading() bool               { return f.loading }
func (f *fakeDealerProvider) WaitResolved(context.Context) error { return nil }

type fakeUserProvider struct {
	mu          sync.Mutex
	auth        bool
	loading     bool
	provisional bool
	user        *api.User

	loginOK      bool
	loginEmail   string
	logoutCalled bool
	initCalls    int

	// handoff simulates a unified login resolving to a dealer account.
	handoff *fakeDealerProvider
}

func (f *fakeUserProvider) Init(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
}
func (f *fakeUserProvider) Login(_ context.Context, email, _ string) bool {
	f.loginEmail = email
	if !f.loginOK {
		return false
	}
	if f.handoff != nil {
		f.handoff.auth = true
		return true
	}
	f.auth = true
	return true
}
func (f *fakeUserProvider) Logout(context.Context) {
	f.logoutCalled = true
	f.auth = false
	f.user = nil
}
func (f *fakeUserProvider) User() *api.User { return f.user }
func (f *fakeUserProvider) Provisional() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.provisional
}
func (f *fakeUserProvider) initCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initCalls
}
func (f *fakeUserProvider) IsAuthenticated() bool       { return f.auth }
func (f *fakeUserProvider) IsLoading() bool             { return f.loading }
func (f *fakeUserProvider) WaitResolved(context.Context) error { return nil }

type fakeAdminProvider struct {
	auth    bool
	loading bool
	admin   *api.Admin

	loginOK      bool
	logoutCalled bool
}

func (f *fakeAdminProvider) Init(context.Context) {}
func (f *fakeAdminProvider) Login(_ context.Context, _, _ string) bool {
	if f.loginOK {
		f.auth = true
	}
	return f.loginOK
}
func (f *fakeAdminProvider) Logout(context.Context) {
	f.logoutCalled = true
	f.auth = false
	f.admin = nil
}
func (f *fakeAdminProvider) Admin() *api.Admin             { return f.admin }
func (f *fakeAdminProvider) IsAuthenticated() bool         { return f.auth }
func (f *fakeAdminProvider) IsLoading() bool               { return f.loading }
func (f *fakeAdminProvider) WaitResolved(context.Context) error { return nil }

type fakeGuard struct {
	decision guard.Decision
	err      error
}

func (f *fakeGuard) Resolve(context.Context) (guard.Decision, error) { return f.decision, f.err }

func newTestApp(fd *fakeDealerProvider, fu *fakeUserProvider, fa *fakeAdminProvider) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	a := &App{
		dealer: fd,
		user:   fu,
		admin:  fa,
		reader: bufio.NewReader(strings.NewReader("")),
		out:    out,
		log:    logging.NewNopLogger(),
	}
	return a, out
}

func TestLogin_UserAccount(t *testing.T) {
	fd := &fakeDealerProvider{}
	fu := &fakeUserProvider{loginOK: true, user: &api.User{Email: "jo@example.org"}}
	fa := &fakeAdminProvider{}
	a, out := newTestApp(fd, fu, fa)

	restore := stubInputs(t, "jo@example.org", []byte("secret"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if fu.loginEmail != "jo@example.org" {
		t.Fatalf("login email mismatch: %q", fu.loginEmail)
	}
	if !strings.Contains(out.String(), "Signed in as jo@example.org") {
		t.Fatalf("missing confirmation, got: %q", out.String())
	}
}

func TestLogin_DealerAccountHandoff(t *testing.T) {
	fd := &fakeDealerProvider{dealer: &api.Dealer{CompanyName: "Haulin Co"}}
	fu := &fakeUserProvider{loginOK: true, handoff: fd}
	fa := &fakeAdminProvider{}
	a, out := newTestApp(fd, fu, fa)

	restore := stubInputs(t, "dealer@example.org", []byte("secret"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if fu.auth {
		t.Fatalf("user domain must stay anonymous on dealer handoff")
	}
	if !strings.Contains(out.String(), "Signed in as dealer Haulin Co") {
		t.Fatalf("missing dealer confirmation, got: %q", out.String())
	}
}

func TestLogin_Failure(t *testing.T) {
	a, out := newTestApp(&fakeDealerProvider{}, &fakeUserProvider{loginOK: false}, &fakeAdminProvider{})

	restore := stubInputs(t, "jo@example.org", []byte("wrong"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !strings.Contains(out.String(), "Sign in failed.") {
		t.Fatalf("missing failure message, got: %q", out.String())
	}
}

func TestDealerLogin(t *testing.T) {
	fd := &fakeDealerProvider{loginOK: true, dealer: &api.Dealer{CompanyName: "Haulin Co"}}
	a, out := newTestApp(fd, &fakeUserProvider{}, &fakeAdminProvider{})

	restore := stubInputs(t, "dealer@example.org", []byte("secret"))
	defer restore()

	if err := a.DealerLogin(context.Background()); err != nil {
		t.Fatalf("DealerLogin err: %v", err)
	}
	if fd.loginEmail != "dealer@example.org" {
		t.Fatalf("login email mismatch: %q", fd.loginEmail)
	}
	if !strings.Contains(out.String(), "Signed in as dealer Haulin Co") {
		t.Fatalf("missing confirmation, got: %q", out.String())
	}
}

func TestAdminLogin_Failure(t *testing.T) {
	a, out := newTestApp(&fakeDealerProvider{}, &fakeUserProvider{}, &fakeAdminProvider{loginOK: false})

	restore := stubInputs(t, "admin@example.org", []byte("wrong"))
	defer restore()

	if err := a.AdminLogin(context.Background()); err != nil {
		t.Fatalf("AdminLogin err: %v", err)
	}
	if !strings.Contains(out.String(), "Admin sign in failed.") {
		t.Fatalf("missing failure message, got: %q", out.String())
	}
}

func TestLogout_ClearsEveryActiveDomain(t *testing.T) {
	fd := &fakeDealerProvider{auth: true}
	fu := &fakeUserProvider{auth: true}
	fa := &fakeAdminProvider{auth: true}
	a, out := newTestApp(fd, fu, fa)

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !fu.logoutCalled || !fd.logoutCalled || !fa.logoutCalled {
		t.Fatalf("not all domains signed out: user=%v dealer=%v admin=%v",
			fu.logoutCalled, fd.logoutCalled, fa.logoutCalled)
	}
	if !strings.Contains(out.String(), "Signed out of user session.") {
		t.Fatalf("missing user logout message: %q", out.String())
	}
}

func TestLogout_NotSignedIn(t *testing.T) {
	a, out := newTestApp(&fakeDealerProvider{}, &fakeUserProvider{}, &fakeAdminProvider{})

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !strings.Contains(out.String(), "Not signed in.") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
