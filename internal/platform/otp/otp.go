// Package otp generates and validates time-boxed numeric one-time passwords.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// DefaultLength is the number of digits in a generated code.
const DefaultLength = 6

// Generator produces fixed-length numeric codes and their expiry instants.
// Codes are drawn from a cryptographically-strong random source; a
// predictable OTP would let an attacker take over password recovery.
type Generator struct {
	length int
	ttl    time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewGenerator creates a Generator. A non-positive length falls back to
// DefaultLength.
func NewGenerator(length int, ttl time.Duration) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length, ttl: ttl, now: time.Now}
}

// Generate returns a random numeric code of the configured length.
func (g *Generator) Generate() (string, error) {
	digits := make([]byte, g.length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to draw random digit: %w", err)
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits), nil
}

// ExpiryFromNow returns the instant at which a code generated now stops
// being valid, in UTC.
func (g *Generator) ExpiryFromNow() time.Time {
	return g.now().UTC().Add(g.ttl)
}

// IsValid reports whether an OTP with the given expiry is still usable.
// A nil expiry is always invalid. Instants are normalized to UTC before
// comparison so a zone-less timestamp read back from storage is treated
// as UTC. Validity is strict: a code is invalid at its expiry instant.
func (g *Generator) IsValid(expiry *time.Time) bool {
	if expiry == nil {
		return false
	}
	return g.now().UTC().Before(expiry.UTC())
}
