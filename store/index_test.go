package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvboard/kv"
)

func TestIndex_EmptyByDefault(t *testing.T) {
	ctx := context.Background()
	ix := NewPostIndex(kv.NewMemory())

	ids, err := ix.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIndex_AddNewestFirst(t *testing.T) {
	ctx := context.Background()
	ix := NewPostIndex(kv.NewMemory())

	require.NoError(t, ix.Add(ctx, "a"))
	require.NoError(t, ix.Add(ctx, "b"))
	require.NoError(t, ix.Add(ctx, "c"))

	ids, err := ix.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestIndex_AddDeduplicates(t *testing.T) {
	ctx := context.Background()
	ix := NewPostIndex(kv.NewMemory())

	require.NoError(t, ix.Add(ctx, "a"))
	require.NoError(t, ix.Add(ctx, "b"))
	// re-adding moves the id to the most recent position, one occurrence only
	require.NoError(t, ix.Add(ctx, "a"))

	ids, err := ix.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestIndex_CapDropsOldest(t *testing.T) {
	ctx := context.Background()
	ix := NewPostIndex(kv.NewMemory())

	for i := 0; i <= maxIndexEntries; i++ {
		require.NoError(t, ix.Add(ctx, fmt.Sprintf("id-%d", i)))
	}

	ids, err := ix.List(ctx)
	require.NoError(t, err)
	require.Len(t, ids, maxIndexEntries)
	assert.Equal(t, fmt.Sprintf("id-%d", maxIndexEntries), ids[0])
	assert.NotContains(t, ids, "id-0", "oldest entry must be dropped past the cap")
}

func TestIndex_Remove(t *testing.T) {
	ctx := context.Background()
	ix := NewPostIndex(kv.NewMemory())

	require.NoError(t, ix.Add(ctx, "a"))
	require.NoError(t, ix.Add(ctx, "b"))

	require.NoError(t, ix.Remove(ctx, "a"))
	ids, err := ix.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)

	// removing an absent id is a no-op
	require.NoError(t, ix.Remove(ctx, "zzz"))
	ids, _ = ix.List(ctx)
	assert.Equal(t, []string{"b"}, ids)
}

func TestIndex_CorruptValueReadsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Put(ctx, postIndexKey, "{not json", 0))

	ix := NewPostIndex(mem)
	ids, err := ix.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
