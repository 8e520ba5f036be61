package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	s, err := GenerateToken(32)
	require.NoError(t, err)

	// 32 bytes base64url without padding
	assert.Len(t, s, 43)
	assert.NotContains(t, s, "=")
	assert.NotContains(t, s, "+")
	assert.NotContains(t, s, "/")

	other, err := GenerateToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}
