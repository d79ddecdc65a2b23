package retrieval

import (
	"context"
	"testing"

	"github.com/kuralverse/kuralsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSampler(t *testing.T) {
	repo, _ := badger.NewMemoryRepositories(t)
	seedCorpus(t, repo, 10)
	ctx := context.Background()

	t.Run("respects exclusions", func(t *testing.T) {
		sampler := NewRandomSampler(repo, WithSeed(7))
		exclude := map[int]bool{1: true, 2: true, 3: true}

		numbers, err := sampler.Select(ctx, exclude, 7)
		require.NoError(t, err)
		assert.Len(t, numbers, 7)
		for _, n := range numbers {
			assert.False(t, exclude[n])
		}
	})

	t.Run("returns fewer when corpus is exhausted", func(t *testing.T) {
		sampler := NewRandomSampler(repo, WithSeed(7))
		exclude := map[int]bool{}
		for i := 1; i <= 8; i++ {
			exclude[i] = true
		}

		numbers, err := sampler.Select(ctx, exclude, 5)
		require.NoError(t, err)
		assert.Len(t, numbers, 2)
	})

	t.Run("deterministic with a seed", func(t *testing.T) {
		first, err := NewRandomSampler(repo, WithSeed(42)).Select(ctx, nil, 5)
		require.NoError(t, err)
		second, err := NewRandomSampler(repo, WithSeed(42)).Select(ctx, nil, 5)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("zero n yields empty", func(t *testing.T) {
		numbers, err := NewRandomSampler(repo).Select(ctx, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, numbers)
	})
}
