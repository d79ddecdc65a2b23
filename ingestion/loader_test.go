package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataset(t *testing.T) {
	t.Run("export column names", func(t *testing.T) {
		verses, err := LoadDataset(strings.NewReader(`{"kural": [
			{
				"ID": 1,
				"Kural": "அகர முதல எழுத்தெல்லாம்",
				"Couplet": "A, as its first of letters, every speech maintains",
				"Explanation": "As the letter A is the first of all letters",
				"Vilakam": "எழுத்துக்கள் எல்லாம்",
				"Adhigaram_ID": 1,
				"Adhigaram": "The Praise of God",
				"Paal": "Virtue"
			}
		]}`))
		require.NoError(t, err)
		require.Len(t, verses, 1)

		verse := verses[0]
		assert.Equal(t, 1, verse.Number)
		assert.Equal(t, 1, verse.Chapter)
		assert.Equal(t, "The Praise of God", verse.ChapterName)
		assert.Equal(t, "Virtue", verse.SectionName)
		assert.Equal(t, "அகர முதல எழுத்தெல்லாம்", verse.Tamil)
		assert.Equal(t, "A, as its first of letters, every speech maintains", verse.English)
		require.NotNil(t, verse.EnglishExplanation)
		assert.Equal(t, "As the letter A is the first of all letters", *verse.EnglishExplanation)
		require.NotNil(t, verse.TamilExplanation)
	})

	t.Run("canonical column names in bare array", func(t *testing.T) {
		verses, err := LoadDataset(strings.NewReader(`[
			{"number": 391, "chapter": 40, "chapterName": "Learning", "sectionName": "Wealth",
			 "tamil": "கற்க", "english": "Learn thoroughly"}
		]`))
		require.NoError(t, err)
		require.Len(t, verses, 1)
		assert.Equal(t, 391, verses[0].Number)
		assert.Equal(t, "Learning", verses[0].ChapterName)
		assert.Nil(t, verses[0].EnglishExplanation)
	})

	t.Run("string ids are coerced", func(t *testing.T) {
		verses, err := LoadDataset(strings.NewReader(`[{"ID": "42", "Couplet": "some text"}]`))
		require.NoError(t, err)
		require.Len(t, verses, 1)
		assert.Equal(t, 42, verses[0].Number)
	})

	t.Run("rows without number or text are skipped", func(t *testing.T) {
		verses, err := LoadDataset(strings.NewReader(`[
			{"Couplet": "no id"},
			{"ID": 0, "Couplet": "zero id"},
			{"ID": 5},
			{"ID": 6, "Couplet": "kept"}
		]`))
		require.NoError(t, err)
		require.Len(t, verses, 1)
		assert.Equal(t, 6, verses[0].Number)
	})

	t.Run("empty dataset rejected", func(t *testing.T) {
		_, err := LoadDataset(strings.NewReader(`[]`))
		assert.ErrorIs(t, err, ErrEmptyDataset)

		_, err = LoadDataset(strings.NewReader(`{"other": []}`))
		assert.ErrorIs(t, err, ErrEmptyDataset)

		_, err = LoadDataset(strings.NewReader(`not json`))
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})
}
