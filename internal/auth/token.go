// Package auth provides credential checks and signed content tokens.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SecretsMatch compares a presented credential against the configured shared
// secret in constant time.
func SecretsMatch(presented, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}

// ErrInvalidToken is returned for expired, malformed, or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid content token")

// TokenIssuer mints and verifies short-lived HS256 tokens that grant read
// access to one asset's content. They let the web UI embed image URLs
// without attaching the shared secret to every <img> request.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// ContentToken returns a signed token granting access to assetID until the TTL elapses.
func (t *TokenIssuer) ContentToken(assetID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   assetID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign content token: %w", err)
	}
	return signed, nil
}

// VerifyContentToken validates a token and returns the asset id it grants.
func (t *TokenIssuer) VerifyContentToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
