package utils

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccountNumber(t *testing.T) {
	number, err := GenerateAccountNumber()

	require.NoError(t, err)
	assert.Len(t, number, 12)
	assert.True(t, strings.HasPrefix(number, "ACC"))
	for _, r := range number[3:] {
		assert.True(t, unicode.IsDigit(r), "expected digit, got %q", r)
	}
}

func TestGenerateAccountNumberVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		number, err := GenerateAccountNumber()
		require.NoError(t, err)
		seen[number] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerateReference(t *testing.T) {
	reference, err := GenerateReference("TRF")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reference, "TRF"))
	// prefix + 14-digit timestamp + 4 random digits
	assert.Len(t, reference, 21)
	for _, r := range reference[3:] {
		assert.True(t, unicode.IsDigit(r), "expected digit, got %q", r)
	}
}
