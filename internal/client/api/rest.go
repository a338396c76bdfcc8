package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/haulbay/haulbay-cli/internal/logging"
)

const defaultTimeout = 15 * time.Second

// REST implements Client against the marketplace HTTP API. The embedded
// cookie jar carries the user and admin server sessions; dealer calls pass
// their bearer token explicitly per call.
type REST struct {
	base     *url.URL
	http     *http.Client
	log      logging.Logger
	deviceID string
}

// Option customizes a REST client.
type Option func(*REST)

// WithLogger attaches a logger. Defaults to the no-op logger.
func WithLogger(l logging.Logger) Option {
	return func(r *REST) { r.log = l }
}

// WithHTTPClient substitutes the underlying *http.Client. The caller is
// responsible for providing a cookie jar if session endpoints are used.
func WithHTTPClient(c *http.Client) Option {
	return func(r *REST) { r.http = c }
}

// WithDeviceID sets the persistent device identifier attached to every
// request as X-Device-Id.
func WithDeviceID(id string) Option {
	return func(r *REST) { r.deviceID = id }
}

// WithTimeout overrides the per-request timeout on the default HTTP client.
// It has no effect after WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(r *REST) { r.http.Timeout = d }
}

// NewREST builds a REST client for the given base URL.
func NewREST(baseURL string, opts ...Option) (*REST, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	r := &REST{
		base: u,
		http: &http.Client{Jar: jar, Timeout: defaultTimeout},
		log:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// do performs one JSON round trip. A non-nil out is decoded from a 2xx
// body. Error mapping: transport failures become ErrUnavailable, 401/403
// become ErrUnauthorized, any other non-2xx (and undecodable 2xx bodies)
// become ErrRejected.
func (r *REST) do(ctx context.Context, method, path string, query url.Values, body any, bearer string, out any) error {
	// JoinPath keeps any path prefix carried by the configured base URL.
	u := r.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if r.deviceID != "" {
		req.Header.Set("X-Device-Id", r.deviceID)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		r.log.Debug(ctx, "request unauthorized", "method", method, "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: %s %s: status %d", ErrUnauthorized, method, path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		r.log.Debug(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: %s %s: status %d", ErrRejected, method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %s %s: malformed response: %v", ErrRejected, method, path, err)
		}
	}
	return nil
}

type emailPassword struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *REST) DealerLogin(ctx context.Context, email, password string) (*DealerSession, error) {
	var session DealerSession
	err := r.do(ctx, http.MethodPost, "/api/dealers/login", nil, emailPassword{email, password}, "", &session)
	if err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, fmt.Errorf("%w: dealer login response missing token", ErrRejected)
	}
	return &session, nil
}

func (r *REST) DealerProfile(ctx context.Context, token string) (*Dealer, error) {
	var dealer Dealer
	if err := r.do(ctx, http.MethodGet, "/api/dealers/profile", nil, nil, token, &dealer); err != nil {
		return nil, err
	}
	return &dealer, nil
}

func (r *REST) DealerLogout(ctx context.Context, token string) error {
	return r.do(ctx, http.MethodPost, "/api/dealers/logout", nil, nil, token, nil)
}

func (r *REST) SessionUser(ctx context.Context) (*User, error) {
	var user User
	if err := r.do(ctx, http.MethodGet, "/api/auth/user", nil, nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// userLoginResponse is the raw polymorphic body of POST /api/users/login.
type userLoginResponse struct {
	AccountType string  `json:"accountType"`
	Token       string  `json:"token"`
	Dealer      *Dealer `json:"dealer"`
	User        *User   `json:"user"`
}

func (r *REST) UserLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	var raw userLoginResponse
	err := r.do(ctx, http.MethodPost, "/api/users/login", nil, emailPassword{email, password}, "", &raw)
	if err != nil {
		return nil, err
	}

	if raw.AccountType == string(LoginKindDealer) {
		if raw.Token == "" || raw.Dealer == nil {
			return nil, fmt.Errorf("%w: dealer login response missing token or profile", ErrRejected)
		}
		return &LoginResult{Kind: LoginKindDealer, Token: raw.Token, Dealer: raw.Dealer, User: raw.User}, nil
	}
	if raw.User == nil {
		return nil, fmt.Errorf("%w: login response missing user", ErrRejected)
	}
	return &LoginResult{Kind: LoginKindUser, User: raw.User}, nil
}

func (r *REST) UserLogout(ctx context.Context) error {
	return r.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, "", nil)
}

func (r *REST) AdminProfile(ctx context.Context) (*Admin, error) {
	var admin Admin
	if err := r.do(ctx, http.MethodGet, "/api/admin/profile", nil, nil, "", &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *REST) AdminLogin(ctx context.Context, email, password string) error {
	return r.do(ctx, http.MethodPost, "/api/admin/login", nil, emailPassword{email, password}, "", nil)
}

func (r *REST) AdminLogout(ctx context.Context) error {
	return r.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil, "", nil)
}

// savedListingBody carries a listing reference in mutation bodies; the id
// lands in truckId or trailerId according to the listing type.
type savedListingBody struct {
	TruckID     int64  `json:"truckId,omitempty"`
	TrailerID   int64  `json:"trailerId,omitempty"`
	ListingType string `json:"listingType,omitempty"`
}

func refBody(ref ListingRef, withType bool) savedListingBody {
	b := savedListingBody{}
	if withType {
		b.ListingType = string(ref.Type)
	}
	if ref.Type == ListingTrailer {
		b.TrailerID = ref.ID
	} else {
		b.TruckID = ref.ID
	}
	return b
}

func (r *REST) CheckSaved(ctx context.Context, ref ListingRef) (bool, error) {
	q := url.Values{}
	if ref.Type == ListingTrailer {
		q.Set("trailerId", strconv.FormatInt(ref.ID, 10))
	} else {
		q.Set("truckId", strconv.FormatInt(ref.ID, 10))
	}
	q.Set("listingType", string(ref.Type))

	var out struct {
		IsSaved bool `json:"isSaved"`
	}
	if err := r.do(ctx, http.MethodGet, "/api/saved-listings/check", q, nil, "", &out); err != nil {
		return false, err
	}
	return out.IsSaved, nil
}

func (r *REST) SaveListing(ctx context.Context, ref ListingRef) error {
	return r.do(ctx, http.MethodPost, "/api/saved-listings", nil, refBody(ref, true), "", nil)
}

func (r *REST) UnsaveListing(ctx context.Context, ref ListingRef) error {
	return r.do(ctx, http.MethodDelete, "/api/saved-listings", nil, refBody(ref, false), "", nil)
}

func (r *REST) ListSaved(ctx context.Context) ([]SavedListing, error) {
	var listings []SavedListing
	if err := r.do(ctx, http.MethodGet, "/api/saved-listings", nil, nil, "", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
