// Package storage implements the client credential store: a small durable
// key/value facade over the profile database. It is the Go analogue of
// browser localStorage: plain strings, surviving restarts, wiped only when
// the profile is deleted. No network or validation logic lives here.
package storage

import "context"

// Well-known keys. Each identity domain reads and writes only its own keys;
// the saved-listing engine owns the per-listing flag keys it derives.
const (
	KeyDealerToken = "dealerToken"
	KeyCurrentUser = "currentUser"

	// Written by the unified-login dealer handoff so the dealer domain can
	// initialize from its own rules on the next resolution cycle.
	KeyCurrentDealer     = "currentDealer"
	KeyCurrentDealerUser = "currentDealerUser"

	// Minted once per profile, attached to outbound requests.
	KeyDeviceID = "deviceID"
)

// Store is the credential store contract. Get returns ("", nil) for an
// absent key. All operations are local to the device.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys returns all stored keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Clear removes every key. Used by tests and profile resets only;
	// providers clear their own keys individually.
	Clear(ctx context.Context) error
}
