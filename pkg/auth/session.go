package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "payam_session"
const minSecretLen = 32

// Claims is the session token payload. The admin flag rides in the token so
// route guarding does not need a profile lookup per request; the /auth/me
// endpoint still re-reads the profile for display data.
type Claims struct {
	ProfileID string `json:"profile_id"`
	IsAdmin   bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned when a session token fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// CreateSessionToken signs an HS256 session token for the given profile.
func CreateSessionToken(profileID string, isAdmin bool, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		ProfileID: profileID,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifySessionToken validates a token and returns its claims.
func VerifySessionToken(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ProfileID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SessionCookieName is the cookie carrying the session token.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes derives the signing key from a config string,
// zero-padding to a minimum of 32 bytes.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
