package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenSecret(t *testing.T) {
	s := genSecret()

	// 32 bytes hex-encoded
	assert.Len(t, s, 64)
	assert.NotEqual(t, s, genSecret())
}
