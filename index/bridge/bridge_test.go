package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/kuralverse/kuralsearch/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests drive the bridge through /bin/sh so no real search backend is
// needed; the scripts emulate the output shapes backends produce.

func shellIndex(script string, opts ...Option) *Index {
	opts = append([]Option{WithArgs("-c", script, "bridge")}, opts...)
	return NewIndex("/bin/sh", opts...)
}

func TestBridgeQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes results from noisy output", func(t *testing.T) {
		idx := shellIndex(`echo "loading model"; echo '[{"id": 12, "score": 0.8}, {"verse_id": "3", "distance": 0.5}]'`)

		neighbors, err := idx.Query(ctx, []float32{0.1, 0.2}, 5)
		require.NoError(t, err)
		require.Len(t, neighbors, 2)
		assert.Equal(t, 12, neighbors[0].Number)
		assert.InDelta(t, 0.8, neighbors[0].Score, 1e-6)
		assert.Equal(t, 3, neighbors[1].Number)
	})

	t.Run("passes vector and k as arguments", func(t *testing.T) {
		idx := shellIndex(`echo "[{\"id\": $2}]"`)

		neighbors, err := idx.Query(ctx, []float32{1}, 7)
		require.NoError(t, err)
		require.Len(t, neighbors, 1)
		assert.Equal(t, 7, neighbors[0].Number)
	})

	t.Run("truncates to k", func(t *testing.T) {
		idx := shellIndex(`echo '[{"id": 1}, {"id": 2}, {"id": 3}]'`)

		neighbors, err := idx.Query(ctx, []float32{1}, 2)
		require.NoError(t, err)
		assert.Len(t, neighbors, 2)
	})

	t.Run("surfaces structured backend errors", func(t *testing.T) {
		idx := shellIndex(`echo '{"error": "model not loaded"}'`)

		_, err := idx.Query(ctx, []float32{1}, 5)
		assert.ErrorIs(t, err, index.ErrUnavailable)
	})

	t.Run("nonzero exit is unavailable", func(t *testing.T) {
		idx := shellIndex(`echo "boom" >&2; exit 3`)

		_, err := idx.Query(ctx, []float32{1}, 5)
		assert.ErrorIs(t, err, index.ErrUnavailable)
	})

	t.Run("timeout kills the process", func(t *testing.T) {
		idx := shellIndex(`sleep 5`, WithTimeout(50*time.Millisecond))

		start := time.Now()
		_, err := idx.Query(ctx, []float32{1}, 5)
		assert.ErrorIs(t, err, index.ErrUnavailable)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("random flags survive decoding", func(t *testing.T) {
		idx := shellIndex(`echo '[{"id": 5, "is_random": true}]'`)

		neighbors, err := idx.Query(ctx, []float32{1}, 5)
		require.NoError(t, err)
		require.Len(t, neighbors, 1)
		assert.True(t, neighbors[0].Fallback)
		assert.InDelta(t, 0.1, neighbors[0].Relevance, 1e-6)
	})
}
