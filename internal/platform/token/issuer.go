// Package token issues and verifies stateless session tokens (JWT).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token's signature or structure is invalid.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its embedded expiry.
	// Callers treat it the same as ErrInvalidToken (reject the request);
	// the distinction exists for logging.
	ErrExpiredToken = errors.New("token has expired")
)

// Issuer creates and verifies signed session tokens carrying a subject ID
// and an absolute expiry. There is no revocation list: a token stays valid
// until its expiry regardless of later account changes, and rotating the
// secret invalidates every outstanding token.
type Issuer struct {
	secret []byte
	ttl    time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewIssuer creates an Issuer with a process-wide secret and a default TTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given subject using the default TTL.
func (i *Issuer) Issue(subjectID string) (string, error) {
	return i.IssueWithTTL(subjectID, i.ttl)
}

// IssueWithTTL signs a token with an explicit TTL override.
func (i *Issuer) IssueWithTTL(subjectID string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its subject.
// Expired tokens yield ErrExpiredToken, everything else invalid yields
// ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
