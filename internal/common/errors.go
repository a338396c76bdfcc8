// Package common defines shared constants and sentinel errors used across
// the HaulBay client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Credential lifecycle errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrTokenExpired   = errors.New("token expired")

	// Generic flow control.
	ErrorInternal = errors.New("internal error")
)
