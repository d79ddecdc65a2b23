package storage

import (
	"testing"
	"time"

	"github.com/kuralverse/kuralsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerseSerialization(t *testing.T) {
	explanation := "The letter A is the first of all letters"

	t.Run("full verse", func(t *testing.T) {
		verse := &core.Verse{
			Number:             1,
			Chapter:            1,
			ChapterName:        "The Praise of God",
			SectionName:        "Virtue",
			Tamil:              "அகர முதல எழுத்தெல்லாம்",
			English:            "A, as its first of letters, every speech maintains",
			EnglishExplanation: &explanation,
			Vector:             []float32{0.25, -0.5, 0.75},
		}

		decoded, err := UnmarshalVerse(MarshalVerse(verse))
		require.NoError(t, err)
		assert.Equal(t, verse, decoded)
	})

	t.Run("placeholder verse", func(t *testing.T) {
		verse := core.NewPlaceholderVerse(9999)
		decoded, err := UnmarshalVerse(MarshalVerse(verse))
		require.NoError(t, err)
		assert.Equal(t, verse, decoded)
		assert.True(t, decoded.Placeholder)
	})

	t.Run("truncated data", func(t *testing.T) {
		data := MarshalVerse(&core.Verse{Number: 42, English: "a verse"})
		_, err := UnmarshalVerse(data[:len(data)/2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestChatMessageSerialization(t *testing.T) {
	message := &core.ChatMessage{
		Id:        core.IDFromContent("s1:hello"),
		SessionID: "s1",
		FromUser:  true,
		Message:   "hello",
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		References: &core.References{
			VerseNumbers:   []int{42, 786},
			ChapterNumbers: []int{5, 79},
		},
	}

	decoded, err := UnmarshalChatMessage(MarshalChatMessage(message))
	require.NoError(t, err)
	assert.Equal(t, message, decoded)
}

func TestSearchRecordSerialization(t *testing.T) {
	record := &core.SearchRecord{
		Id:        core.IDFromContent("s1:friendship"),
		SessionID: "s1",
		Query:     "how to choose good friends",
		Results: []core.ResultRef{
			{Number: 783, Score: 0.91, Relevance: 1.0},
			{Number: 17, Score: 0, Relevance: core.FallbackRelevance, Fallback: true},
		},
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalSearchRecord(MarshalSearchRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}
