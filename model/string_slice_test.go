package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceValue(t *testing.T) {
	v, err := StringSlice{"example.com", "docs.example.com"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "example.com,docs.example.com", v)

	v, err = StringSlice{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	_, err = StringSlice{"a,b"}.Value()
	assert.Error(t, err, "commas are the separator")
}

func TestStringSliceScan(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan("example.com,docs.example.com"))
	assert.Equal(t, StringSlice{"example.com", "docs.example.com"}, s)

	require.NoError(t, s.Scan([]byte("example.com")))
	assert.Equal(t, StringSlice{"example.com"}, s)

	require.NoError(t, s.Scan(""))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)

	assert.Error(t, s.Scan(42))
}
