package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPayload(t *testing.T) {
	t.Run("clean array", func(t *testing.T) {
		payload, err := ExtractPayload([]byte(`[{"id": 1, "score": 0.9}]`))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id": 1, "score": 0.9}]`, string(payload))
	})

	t.Run("log pollution around array", func(t *testing.T) {
		output := []byte("loading model...\nbatches: 100%\n[{\"id\": 5}]\ndone\n")
		payload, err := ExtractPayload(output)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id": 5}]`, string(payload))
	})

	t.Run("structured error object", func(t *testing.T) {
		_, err := ExtractPayload([]byte(`{"error": "model not loaded"}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "model not loaded")
	})

	t.Run("no array at all", func(t *testing.T) {
		_, err := ExtractPayload([]byte("just some log output"))
		assert.ErrorIs(t, err, ErrBadPayload)
	})

	t.Run("malformed array", func(t *testing.T) {
		_, err := ExtractPayload([]byte(`[{"id": 1,]`))
		assert.ErrorIs(t, err, ErrBadPayload)
	})
}

func TestDecodeResults(t *testing.T) {
	t.Run("numeric and string ids", func(t *testing.T) {
		results, err := DecodeResults([]byte(`[
			{"id": 12, "score": 0.83},
			{"verse_id": "431", "distance": 0.44},
			{"number": 7}
		]`))
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, 12, results[0].Number)
		assert.True(t, results[0].HasScore)
		assert.InDelta(t, 0.83, results[0].Score, 1e-9)

		assert.Equal(t, 431, results[1].Number)
		assert.InDelta(t, 0.44, results[1].Score, 1e-9)

		assert.Equal(t, 7, results[2].Number)
		assert.False(t, results[2].HasScore)
		assert.False(t, results[2].HasRelevance)
	})

	t.Run("random flags in both spellings", func(t *testing.T) {
		results, err := DecodeResults([]byte(`[
			{"id": 1, "is_random": true},
			{"id": 2, "isRandom": true},
			{"id": 3, "is_random": false}
		]`))
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.True(t, results[0].Fallback)
		assert.True(t, results[1].Fallback)
		assert.False(t, results[2].Fallback)
	})

	t.Run("unparseable id is left unset", func(t *testing.T) {
		results, err := DecodeResults([]byte(`[{"id": "not-a-number", "score": 0.5}]`))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].HasNumber)
	})

	t.Run("relevance passthrough", func(t *testing.T) {
		results, err := DecodeResults([]byte(`[{"id": 9, "relevance": 0.72}]`))
		require.NoError(t, err)
		require.True(t, results[0].HasRelevance)
		assert.InDelta(t, 0.72, results[0].Relevance, 1e-9)
	})
}
