package api

import "fmt"

// ListingType tags a listing reference as a truck or a trailer.
type ListingType string

const (
	ListingTruck   ListingType = "truck"
	ListingTrailer ListingType = "trailer"
)

// ListingRef identifies a single listing.
type ListingRef struct {
	Type ListingType
	ID   int64
}

func (r ListingRef) String() string {
	return fmt.Sprintf("%s-%d", r.Type, r.ID)
}

// Dealer is the dealer profile record returned by the dealer endpoints.
type Dealer struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}

// User is the individual-user profile record.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Admin is the administrator profile record.
type Admin struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

// DealerSession is the result of a successful dealer login.
type DealerSession struct {
	Token  string `json:"token"`
	Dealer Dealer `json:"dealer"`
}

// LoginKind discriminates the polymorphic unified-login response.
type LoginKind string

const (
	LoginKindUser   LoginKind = "user"
	LoginKindDealer LoginKind = "dealer"
)

// LoginResult is the tagged union produced by UserLogin. Exactly one of the
// branches is populated according to Kind: User for LoginKindUser; Token and
// Dealer (and optionally User) for LoginKindDealer.
type LoginResult struct {
	Kind   LoginKind
	User   *User
	Dealer *Dealer
	Token  string
}

// SavedListing is one entry of the server-backed saved-listing collection.
type SavedListing struct {
	ID          int64       `json:"id"`
	ListingType ListingType `json:"listingType"`
	TruckID     int64       `json:"truckId,omitempty"`
	TrailerID   int64       `json:"trailerId,omitempty"`
	Title       string      `json:"title,omitempty"`
}

// ListingID returns the truck or trailer id, whichever is set.
func (s SavedListing) ListingID() int64 {
	if s.ListingType == ListingTrailer {
		return s.TrailerID
	}
	return s.TruckID
}
