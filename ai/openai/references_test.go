package openai

import (
	"testing"

	"github.com/kuralverse/kuralsearch/ai"
	"github.com/stretchr/testify/assert"
)

func TestExtractVerseNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{
			name: "plain references",
			text: "Verse 391 teaches that learning must be thorough, and verse 392 calls letters and numbers two eyes.",
			want: []int{391, 392},
		},
		{
			name: "kural with hash",
			text: "As Kural #42 puts it, the householder supports all three.",
			want: []int{42},
		},
		{
			name: "case insensitive and deduplicated",
			text: "VERSE 7 and again verse 7, plus kural 7.",
			want: []int{7},
		},
		{
			name: "no references",
			text: "The text speaks of virtue in general terms.",
			want: []int{},
		},
		{
			name: "bare numbers ignored",
			text: "There are 1330 couplets in 133 chapters.",
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractVerseNumbers(tt.text))
		})
	}
}

func TestDedupeChapters(t *testing.T) {
	assert.Equal(t, []int{40, 5}, dedupeChapters([]int{40, 5, 40, 0, 5}))
	assert.Empty(t, dedupeChapters([]int{0, 0}))
}

func TestBuildChatSystemPrompt(t *testing.T) {
	t.Run("includes grounding verses", func(t *testing.T) {
		prompt := buildChatSystemPrompt([]ai.GroundingVerse{
			{Number: 391, Chapter: 40, ChapterName: "Learning", Text: "Learn thoroughly what should be learned", Explanation: "Full learning asks full living."},
		})
		assert.Contains(t, prompt, "Verse 391")
		assert.Contains(t, prompt, "Chapter 40: Learning")
		assert.Contains(t, prompt, "Full learning asks full living.")
	})

	t.Run("empty grounding is acknowledged", func(t *testing.T) {
		prompt := buildChatSystemPrompt(nil)
		assert.Contains(t, prompt, "No verses were retrieved")
	})
}
