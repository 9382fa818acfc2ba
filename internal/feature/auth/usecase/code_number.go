package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeNumberPrefix = "USR"
	codeNumberLength = 8
	codeNumberChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// generateCodeNumber returns a public code number of the form USR-XXXXXXXX
// with a random uppercase-alphanumeric suffix. Collisions are negligible at
// this length but the storage-level uniqueness constraint still backstops
// them (see Register).
func generateCodeNumber() (string, error) {
	suffix := make([]byte, codeNumberLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate code number: %w", err)
		}
		suffix[i] = codeNumberChars[n.Int64()]
	}
	return fmt.Sprintf("%s-%s", codeNumberPrefix, suffix), nil
}
