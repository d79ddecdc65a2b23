package memory

import (
	"context"
	"testing"

	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/index"
	"github.com/kuralverse/kuralsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorVerse(number int, vector []float32) *core.Verse {
	return &core.Verse{
		Number:  number,
		English: "verse text",
		Vector:  vector,
	}
}

func TestIndexQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by similarity", func(t *testing.T) {
		idx := NewIndex()
		require.NoError(t, idx.Upsert(
			vectorVerse(1, []float32{1, 0, 0}),
			vectorVerse(2, []float32{0, 1, 0}),
			vectorVerse(3, []float32{0.9, 0.1, 0}),
		))

		neighbors, err := idx.Query(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		require.Len(t, neighbors, 2)
		assert.Equal(t, 1, neighbors[0].Number)
		assert.Equal(t, 3, neighbors[1].Number)
		assert.Greater(t, neighbors[0].Score, neighbors[1].Score)
	})

	t.Run("never pads past the corpus", func(t *testing.T) {
		idx := NewIndex()
		require.NoError(t, idx.Upsert(vectorVerse(1, []float32{1, 0})))

		neighbors, err := idx.Query(ctx, []float32{1, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, neighbors, 1)
	})

	t.Run("empty index yields empty slice", func(t *testing.T) {
		idx := NewIndex()
		neighbors, err := idx.Query(ctx, []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, neighbors)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		idx := NewIndex()
		require.NoError(t, idx.Upsert(vectorVerse(1, []float32{1, 0, 0})))

		_, err := idx.Query(ctx, []float32{1, 0}, 5)
		assert.ErrorIs(t, err, index.ErrDimensionMismatch)
	})

	t.Run("ties break toward lower number", func(t *testing.T) {
		idx := NewIndex()
		require.NoError(t, idx.Upsert(
			vectorVerse(9, []float32{1, 0}),
			vectorVerse(4, []float32{1, 0}),
		))

		neighbors, err := idx.Query(ctx, []float32{1, 0}, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, neighbors[0].Number)
		assert.Equal(t, 9, neighbors[1].Number)
	})
}

func TestIndexUpsert(t *testing.T) {
	t.Run("replaces existing vector", func(t *testing.T) {
		idx := NewIndex()
		require.NoError(t, idx.Upsert(vectorVerse(1, []float32{1, 0})))
		require.NoError(t, idx.Upsert(vectorVerse(1, []float32{0, 1})))
		assert.Equal(t, 1, idx.Size())

		neighbors, err := idx.Query(context.Background(), []float32{0, 1}, 1)
		require.NoError(t, err)
		require.Len(t, neighbors, 1)
		assert.InDelta(t, 1.0, neighbors[0].Score, 1e-6)
	})

	t.Run("skips verses without vectors", func(t *testing.T) {
		idx := NewIndex()
		require.NoError(t, idx.Upsert(&core.Verse{Number: 1, English: "no vector"}))
		assert.Equal(t, 0, idx.Size())
	})

	t.Run("rejects mismatched dimensions", func(t *testing.T) {
		idx := NewIndex()
		require.NoError(t, idx.Upsert(vectorVerse(1, []float32{1, 0, 0})))
		err := idx.Upsert(vectorVerse(2, []float32{1, 0}))
		assert.ErrorIs(t, err, index.ErrDimensionMismatch)
	})
}

func TestIndexLoad(t *testing.T) {
	repo, _ := badger.NewMemoryRepositories(t)
	ctx := context.Background()

	_, err := repo.Add(ctx,
		vectorVerse(1, []float32{1, 0}),
		vectorVerse(2, []float32{0, 1}),
		&core.Verse{Number: 3, English: "not embedded yet"},
	)
	require.NoError(t, err)

	idx := NewIndex()
	loaded, err := idx.Load(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 2, idx.Size())
}
