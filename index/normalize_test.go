package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		neighbors := Normalize([]RawResult{
			{Number: 42, HasNumber: true},
		}, nil)
		require.Len(t, neighbors, 1)
		assert.Equal(t, 42, neighbors[0].Number)
		assert.Zero(t, neighbors[0].Score)
		assert.InDelta(t, 0.5, neighbors[0].Relevance, 1e-6)
		assert.False(t, neighbors[0].Fallback)
	})

	t.Run("keeps reported signals", func(t *testing.T) {
		neighbors := Normalize([]RawResult{
			{Number: 7, HasNumber: true, Score: 0.91, HasScore: true, Relevance: 0.8, HasRelevance: true},
		}, nil)
		require.Len(t, neighbors, 1)
		assert.InDelta(t, 0.91, neighbors[0].Score, 1e-6)
		assert.InDelta(t, 0.8, neighbors[0].Relevance, 1e-6)
	})

	t.Run("random picks get fallback relevance", func(t *testing.T) {
		neighbors := Normalize([]RawResult{
			{Number: 3, HasNumber: true, Relevance: 0.9, HasRelevance: true, Fallback: true},
		}, nil)
		require.Len(t, neighbors, 1)
		assert.True(t, neighbors[0].Fallback)
		assert.InDelta(t, 0.1, neighbors[0].Relevance, 1e-6)
	})

	t.Run("drops invalid identifiers", func(t *testing.T) {
		neighbors := Normalize([]RawResult{
			{Number: 0, HasNumber: true},
			{Number: -4, HasNumber: true},
			{HasNumber: false},
			{Number: 12, HasNumber: true},
		}, nil)
		require.Len(t, neighbors, 1)
		assert.Equal(t, 12, neighbors[0].Number)
	})
}
