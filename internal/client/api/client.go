// Package api is the HTTP client for the HaulBay marketplace endpoints.
// One method per collaborator endpoint; three credential transports:
// dealer calls carry a bearer token, user and admin calls ride the shared
// cookie jar, anonymous calls carry nothing.
package api

import "context"

// Client is the full endpoint surface consumed by the identity providers
// and the saved-listing engine.
type Client interface {
	DealerAPI
	UserAPI
	AdminAPI
	SavedListingsAPI
}

// DealerAPI covers the bearer-token dealer endpoint family.
type DealerAPI interface {
	DealerLogin(ctx context.Context, email, password string) (*DealerSession, error)
	DealerProfile(ctx context.Context, token string) (*Dealer, error)
	DealerLogout(ctx context.Context, token string) error
}

// UserAPI covers the cookie-session individual-user endpoint family.
type UserAPI interface {
	SessionUser(ctx context.Context) (*User, error)
	UserLogin(ctx context.Context, email, password string) (*LoginResult, error)
	UserLogout(ctx context.Context) error
}

// AdminAPI covers the cookie-session administrator endpoint family. Its
// credential namespace is fully separate from UserAPI even though both use
// cookies.
type AdminAPI interface {
	AdminProfile(ctx context.Context) (*Admin, error)
	AdminLogin(ctx context.Context, email, password string) error
	AdminLogout(ctx context.Context) error
}

// SavedListingsAPI covers the server-backed saved-listing records of the
// authenticated individual user.
type SavedListingsAPI interface {
	CheckSaved(ctx context.Context, ref ListingRef) (bool, error)
	SaveListing(ctx context.Context, ref ListingRef) error
	UnsaveListing(ctx context.Context, ref ListingRef) error
	ListSaved(ctx context.Context) ([]SavedListing, error)
}
