package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expired jwt",
			token: signedJWT(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			want:  true,
		},
		{
			name:  "live jwt",
			token: signedJWT(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			want:  false,
		},
		{
			name:  "jwt without exp",
			token: signedJWT(t, jwt.MapClaims{"sub": "dealer-7"}),
			want:  false,
		},
		{
			name:  "opaque token",
			token: "not-a-jwt-at-all",
			want:  false,
		},
		{
			name:  "empty token",
			token: "",
			want:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenExpired(tc.token, now))
		})
	}
}
