// Package password provides one-way hashing and verification for account passwords.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// ErrCorruptDigest indicates that a stored digest cannot be parsed.
// It is distinct from a wrong-password result: a corrupt digest means
// the credential store itself is damaged.
var ErrCorruptDigest = errors.New("password digest is malformed")

// Argon2id parameters. Changing them only affects newly created digests;
// verification reads the parameters embedded in each digest.
const (
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 2
	saltLength  = 16
	keyLength   = 32
)

// Hasher hashes and verifies passwords using Argon2id.
// Each digest embeds a per-call random salt, so two hashes of the same
// plaintext differ.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash returns a PHC-format Argon2id digest for the given plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(plaintext), salt, iterations, memory, parallelism, keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Digest := base64.RawStdEncoding.EncodeToString(digest)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism, b64Salt, b64Digest), nil
}

// Verify reports whether plaintext matches the encoded digest.
// A wrong password returns (false, nil). A digest that cannot be parsed
// returns ErrCorruptDigest.
func (h *Hasher) Verify(plaintext, encoded string) (bool, error) {
	mem, iters, par, salt, want, err := decodeDigest(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey([]byte(plaintext), salt, iters, mem, par, uint32(len(want)))

	// Constant time with respect to correct vs. incorrect guesses.
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// decodeDigest parses a PHC-style string: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
func decodeDigest(encoded string) (mem, iters uint32, par uint8, salt, hash []byte, err error) {
	parts := splitDollar(encoded)
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" || parts[2] != "v=19" {
		return 0, 0, 0, nil, nil, ErrCorruptDigest
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: bad parameters", ErrCorruptDigest)
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: bad salt encoding", ErrCorruptDigest)
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: bad hash encoding", ErrCorruptDigest)
	}
	return mem, iters, par, salt, hash, nil
}

func splitDollar(s string) []string {
	parts := make([]string, 0, 6)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '$' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
