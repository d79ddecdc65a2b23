package badger

import (
	"context"
	"testing"
	"time"

	"github.com/kuralverse/kuralsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepositoryMessages(t *testing.T) {
	_, repo := NewMemoryRepositories(t)
	ctx := context.Background()

	t.Run("appends and reads in order", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Microsecond)
		stored, err := repo.AddMessages(ctx,
			&core.ChatMessage{SessionID: "s1", FromUser: true, Message: "what does kural say about anger?", Timestamp: base},
			&core.ChatMessage{SessionID: "s1", FromUser: false, Message: "Verse 306 warns that anger kills", Timestamp: base.Add(time.Second)},
		)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		assert.NotZero(t, stored[0].Id)
		assert.NotZero(t, stored[1].Id)

		messages, err := repo.GetMessages(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.True(t, messages[0].FromUser)
		assert.False(t, messages[1].FromUser)
		assert.Equal(t, "what does kural say about anger?", messages[0].Message)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		_, err := repo.AddMessages(ctx, &core.ChatMessage{SessionID: "s2", FromUser: true, Message: "hello"})
		require.NoError(t, err)

		messages, err := repo.GetMessages(ctx, "s2")
		require.NoError(t, err)
		require.Len(t, messages, 1)
	})

	t.Run("unknown session yields empty transcript", func(t *testing.T) {
		messages, err := repo.GetMessages(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("rejects invalid messages", func(t *testing.T) {
		_, err := repo.AddMessages(ctx, &core.ChatMessage{SessionID: "s3"})
		assert.ErrorIs(t, err, core.ErrEmptyMessage)

		_, err = repo.AddMessages(ctx, &core.ChatMessage{Message: "orphan"})
		assert.ErrorIs(t, err, core.ErrEmptySessionID)
	})

	t.Run("preserves references", func(t *testing.T) {
		_, err := repo.AddMessages(ctx, &core.ChatMessage{
			SessionID: "s4",
			Message:   "see these verses",
			References: &core.References{
				VerseNumbers:   []int{306, 307},
				ChapterNumbers: []int{31},
			},
		})
		require.NoError(t, err)

		messages, err := repo.GetMessages(ctx, "s4")
		require.NoError(t, err)
		require.Len(t, messages, 1)
		require.NotNil(t, messages[0].References)
		assert.Equal(t, []int{306, 307}, messages[0].References.VerseNumbers)
	})
}

func TestChatRepositorySearchRecords(t *testing.T) {
	_, repo := NewMemoryRepositories(t)
	ctx := context.Background()

	t.Run("appends and reads in order", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Microsecond)

		first, err := repo.AddSearchRecord(ctx, &core.SearchRecord{
			SessionID: "s1",
			Query:     "friendship",
			Results:   []core.ResultRef{{Number: 783, Score: 0.9, Relevance: 1.0}},
			Timestamp: base,
		})
		require.NoError(t, err)
		assert.NotZero(t, first.Id)

		_, err = repo.AddSearchRecord(ctx, &core.SearchRecord{
			SessionID: "s1",
			Query:     "patience",
			Timestamp: base.Add(time.Second),
		})
		require.NoError(t, err)

		records, err := repo.GetSearchRecords(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "friendship", records[0].Query)
		assert.Equal(t, "patience", records[1].Query)
		require.Len(t, records[0].Results, 1)
		assert.Equal(t, 783, records[0].Results[0].Number)
	})

	t.Run("requires a session", func(t *testing.T) {
		_, err := repo.AddSearchRecord(ctx, &core.SearchRecord{Query: "orphan"})
		assert.ErrorIs(t, err, core.ErrEmptySessionID)
	})

	t.Run("unknown session yields empty history", func(t *testing.T) {
		records, err := repo.GetSearchRecords(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
