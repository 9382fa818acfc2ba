// Package crypto provides reversible, authenticated encryption for single
// sensitive text fields stored in the database.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
)

// ErrCipherIntegrity indicates that a ciphertext token was tampered with or
// was encrypted under a different key. The value is unrecoverable.
var ErrCipherIntegrity = errors.New("ciphertext failed integrity check")

const keyLength = 32 // AES-256

// TextCipher encrypts and decrypts short text values with AES-GCM.
// The resulting token is base64url(nonce || ciphertext || tag), so
// confidentiality and integrity are both covered.
type TextCipher struct {
	aead cipher.AEAD
}

// NewTextCipher builds a TextCipher from a base64-encoded 32-byte key.
//
// If base64Key is empty a fresh random key is generated in-process.
// That keeps development setups working, but it is an operational hazard:
// restarting the process without persisting the generated key makes every
// previously encrypted value permanently undecryptable. A loud warning is
// logged so this cannot go unnoticed.
func NewTextCipher(base64Key string) (*TextCipher, error) {
	var key []byte
	if base64Key == "" {
		key = make([]byte, keyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate cipher key: %w", err)
		}
		slog.Warn("CIPHER_KEY is not set; generated an ephemeral key. " +
			"All values encrypted with it become PERMANENTLY UNDECRYPTABLE after restart. " +
			"Set CIPHER_KEY in production.")
	} else {
		var err error
		key, err = base64.StdEncoding.DecodeString(base64Key)
		if err != nil {
			return nil, fmt.Errorf("CIPHER_KEY is not valid base64: %w", err)
		}
		if len(key) != keyLength {
			return nil, fmt.Errorf("CIPHER_KEY must decode to %d bytes, got %d", keyLength, len(key))
		}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return &TextCipher{aead: aead}, nil
}

// GenerateKey returns a fresh base64-encoded key suitable for CIPHER_KEY.
func GenerateKey() (string, error) {
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Encrypt encrypts plaintext into a self-contained token.
// A fresh random nonce is used per call, so encrypting the same value
// twice yields different tokens.
func (c *TextCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any tampering with the token, and any token
// produced under a different key, yields ErrCipherIntegrity — never a
// silently wrong plaintext.
func (c *TextCipher) Decrypt(token string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: not a valid token", ErrCipherIntegrity)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", fmt.Errorf("%w: token too short", ErrCipherIntegrity)
	}
	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrCipherIntegrity
	}
	return string(plaintext), nil
}
