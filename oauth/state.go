package oauth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const stateBytes = 16

// NewState returns a CSRF state token: 16 random bytes as 32 lowercase
// hex characters.
func NewState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
