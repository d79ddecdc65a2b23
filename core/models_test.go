package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("how to choose good friends")
		b := IDFromContent("how to choose good friends")
		assert.Equal(t, a, b)
	})

	t.Run("different content different id", func(t *testing.T) {
		a := IDFromContent("friendship")
		b := IDFromContent("patience")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestNewPlaceholderVerse(t *testing.T) {
	v := NewPlaceholderVerse(9999)

	assert.Equal(t, 9999, v.Number)
	assert.Equal(t, 0, v.Chapter)
	assert.Equal(t, "Unknown", v.ChapterName)
	assert.Equal(t, "Unknown", v.SectionName)
	assert.Equal(t, NotAvailable, v.Tamil)
	assert.Equal(t, NotAvailable, v.English)
	assert.Nil(t, v.TamilExplanation)
	assert.Nil(t, v.EnglishExplanation)
	assert.True(t, v.Placeholder)

	// Two placeholders for the same number must carry identical content.
	assert.Equal(t, v, NewPlaceholderVerse(9999))
}
