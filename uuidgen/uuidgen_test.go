package uuidgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateV5(t *testing.T) {
	var g Generator

	// Known vectors from migrated PHP-SALSAH resources.
	id, err := g.GenerateV5("751e0b8a")
	require.NoError(t, err)
	assert.Equal(t, "70aWaB2kWsuiN6ujYgM0ZQ", id)

	id, err = g.GenerateV5("779b9990a0c3f")
	require.NoError(t, err)
	assert.Equal(t, "Ef9heHjPWDS7dMR_gGax2Q", id)
}

func TestGenerateV5Deterministic(t *testing.T) {
	var g Generator

	first, err := g.GenerateV5("76bb2132d30d6")
	require.NoError(t, err)
	second, err := g.GenerateV5("76bb2132d30d6")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 22, "base64url of 16 bytes without padding")
}
