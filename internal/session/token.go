package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the name of the session cookie.
const CookieName = "inkwell_session"

// TTL is how long a session lives, on both the cookie and the server-side
// entry.
const TTL = 7 * 24 * time.Hour

// TokenSigner mints and parses the signed cookie token. The token carries
// no profile data; its JTI is the server-side session ID.
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a signer with the given secret.
func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret)}
}

// Mint generates a signed token whose ID claim is sessionID.
func (s *TokenSigner) Mint(sessionID string, ttl time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token and returns the session ID it carries.
func (s *TokenSigner) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.ID == "" {
		return "", errors.New("session ID not found")
	}
	return claims.ID, nil
}
