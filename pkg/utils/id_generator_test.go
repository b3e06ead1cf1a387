package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencePrefixes(t *testing.T) {
	sf, err := NewSnowflake(1)
	require.NoError(t, err)
	g := NewReferenceGenerator(sf)

	assert.True(t, strings.HasPrefix(g.GenerateTransactionRef(), "TXN-"))
	assert.True(t, strings.HasPrefix(g.GenerateWasteRef(), "WST-"))
	assert.True(t, strings.HasPrefix(g.GenerateAgentRef(), "AGT-"))
	assert.True(t, strings.HasPrefix(g.GenerateCollectionRef(), "COL-"))
}

func TestReferenceUniqueness(t *testing.T) {
	sf, err := NewSnowflake(1)
	require.NoError(t, err)
	g := NewReferenceGenerator(sf)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := g.GenerateTransactionRef()
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestSnowflakeRejectsInvalidNode(t *testing.T) {
	_, err := NewSnowflake(-1)
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = NewSnowflake(1024)
	assert.ErrorIs(t, err, ErrInvalidNode)
}
