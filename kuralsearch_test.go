package kuralsearch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kuralverse/kuralsearch/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		service, err := NewService(tmpDir, WithAIProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, service)
		defer service.Close()

		assert.NotNil(t, service.VerseRepository())
		assert.NotNil(t, service.ChatRepository())
		assert.NotNil(t, service.Index())
		assert.NotNil(t, service.Provider())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		service, err := NewService(tmpFile, WithAIProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, service)
	})
}

func TestServiceClose(t *testing.T) {
	service, err := NewService("", WithInMemoryStorage(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	assert.NoError(t, service.Close())
}

func TestServiceEndToEnd(t *testing.T) {
	ctx := context.Background()

	service, err := NewService("", WithInMemoryStorage(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer service.Close()

	pipeline, err := service.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	dataset := `{"kural": [
		{"ID": 1, "Couplet": "A, as its first of letters, every speech maintains", "Adhigaram_ID": 1, "Adhigaram": "The Praise of God", "Paal": "Virtue"},
		{"ID": 2, "Couplet": "No fruit have men of all their studied lore", "Adhigaram_ID": 1, "Adhigaram": "The Praise of God", "Paal": "Virtue"},
		{"ID": 391, "Couplet": "Learn thoroughly what should be learned", "Adhigaram_ID": 40, "Adhigaram": "Learning", "Paal": "Wealth"}
	]}`
	stored, embedded, err := pipeline.Seed(ctx, strings.NewReader(dataset))
	require.NoError(t, err)
	assert.Equal(t, 3, stored)
	assert.Equal(t, 3, embedded)

	loaded, err := service.LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded)

	searcher, err := service.NewSearcher()
	require.NoError(t, err)

	results, err := searcher.Search(ctx, "learning and study", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.NotEmpty(t, result.Verse.English)
	}
}
