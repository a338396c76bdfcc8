package api

import "errors"

var (
	// ErrUnavailable marks transport-level failures: the server could not
	// be reached at all. Providers may fall back to cached state for this
	// class only.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks 401/403 responses: the presented credential
	// was rejected. Providers clear local credentials on this.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected marks any other non-2xx response, and malformed bodies.
	// Treated exactly like a credential rejection by providers.
	ErrRejected = errors.New("request rejected")
)

// IsTransport reports whether err is a transport failure rather than a
// server verdict.
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
