package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSaleCode returns an opaque hex sale code with 48 bits of entropy,
// drawn from the platform CSPRNG.
func GenerateSaleCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate sale code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
