package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSaleCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateSaleCode()
		require.NoError(t, err)
		assert.Len(t, code, 12)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
