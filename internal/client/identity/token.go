package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether raw is a JWT whose exp claim lies before now.
// The parse is unverified: the point is to skip a doomed profile fetch, not
// to validate the token; the server remains the authority. Opaque tokens
// and tokens without exp are never treated as expired.
func tokenExpired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
