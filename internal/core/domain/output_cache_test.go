package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/core/domain"
)

func TestOutputCache_IdempotentWrite(t *testing.T) {
	cache := domain.NewOutputCache()
	id := domain.NewResourceID("/dist/main.js")

	written := cache.Set(id, []byte("console.log(1)"))
	assert.True(t, written, "first write must report written")

	written = cache.Set(id, []byte("console.log(1)"))
	assert.False(t, written, "identical content must be suppressed")

	written = cache.Set(id, []byte("console.log(2)"))
	assert.True(t, written, "different content must report written")
}

func TestOutputCache_HashTracksContent(t *testing.T) {
	cache := domain.NewOutputCache()
	id := domain.NewResourceID("/dist/main.js")

	cache.Set(id, []byte("v1"))
	first, ok := cache.Get(id)
	require.True(t, ok)

	cache.Set(id, []byte("v2"))
	second, ok := cache.Get(id)
	require.True(t, ok)

	assert.NotEqual(t, first.Hash, second.Hash)
	assert.Equal(t, []byte("v2"), second.Content)
}

func TestOutputCache_GetMissing(t *testing.T) {
	cache := domain.NewOutputCache()

	_, ok := cache.Get(domain.NewResourceID("/dist/missing.js"))

	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestOutputCache_SetCopiesContent(t *testing.T) {
	cache := domain.NewOutputCache()
	id := domain.NewResourceID("/dist/main.js")

	content := []byte("mutable")
	cache.Set(id, content)
	content[0] = 'X'

	entry, ok := cache.Get(id)
	require.True(t, ok)
	assert.Equal(t, []byte("mutable"), entry.Content)
}
