package openai

import (
	"regexp"
	"sort"
	"strconv"
)

// verseRefPattern matches spoken verse references like "Verse 391",
// "kural #42", or "VERSE 7".
var verseRefPattern = regexp.MustCompile(`(?i)\b(?:verse|kural)\s+#?(\d+)`)

// extractVerseNumbers pulls verse references out of generated text,
// deduplicated and sorted ascending.
func extractVerseNumbers(text string) []int {
	matches := verseRefPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[int]bool, len(matches))
	numbers := make([]int, 0, len(matches))

	for _, match := range matches {
		number, err := strconv.Atoi(match[1])
		if err != nil || number <= 0 || seen[number] {
			continue
		}
		seen[number] = true
		numbers = append(numbers, number)
	}

	sort.Ints(numbers)
	return numbers
}

// dedupeChapters collects the distinct chapter numbers of the grounding
// verses, in first-seen order. Chapter 0 (placeholder) is skipped.
func dedupeChapters(chapters []int) []int {
	seen := make(map[int]bool, len(chapters))
	deduped := make([]int, 0, len(chapters))
	for _, chapter := range chapters {
		if chapter <= 0 || seen[chapter] {
			continue
		}
		seen[chapter] = true
		deduped = append(deduped, chapter)
	}
	return deduped
}
