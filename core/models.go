package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for chat and history records.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NotAvailable is the sentinel text used for placeholder verses.
const NotAvailable = "Text not available"

// Verse is a single Thirukkural couplet. The verse number (1..1330) is the
// corpus's natural key; it is unique and immutable once assigned.
type Verse struct {
	Number             int       `json:"number"`
	Chapter            int       `json:"chapter"`
	ChapterName        string    `json:"chapterName"`
	SectionName        string    `json:"sectionName"`
	Tamil              string    `json:"tamil"`
	English            string    `json:"english"`
	TamilExplanation   *string   `json:"tamilExplanation"`
	EnglishExplanation *string   `json:"englishExplanation"`
	Vector             []float32 `json:"-"` // Embedding vector (populated by ingestion)

	// Placeholder marks a synthesized stand-in for a number that was never
	// ingested. Placeholders satisfy internal hydration but are invisible
	// to public lookups and listings.
	Placeholder bool `json:"-"`
}

// NewPlaceholderVerse synthesizes a stub verse for a number that is absent
// from the corpus. All text fields carry the not-available sentinel so every
// numeric reference returned by retrieval resolves to some record.
func NewPlaceholderVerse(number int) *Verse {
	return &Verse{
		Number:      number,
		Chapter:     0,
		ChapterName: "Unknown",
		SectionName: "Unknown",
		Tamil:       NotAvailable,
		English:     NotAvailable,
		Placeholder: true,
	}
}

// FallbackRelevance is the fixed relevance assigned to fallback entries so
// they are distinguishable as low-confidence.
const FallbackRelevance = 0.1

// SearchResult pairs a hydrated verse with its ranking signals.
// Score is the raw index similarity; Relevance is normalized to [0,1].
type SearchResult struct {
	Verse     *Verse  `json:"verse"`
	Score     float32 `json:"score"`
	Relevance float32 `json:"relevance"`
	Fallback  bool    `json:"isFallback"`
}

// References identifies the verses and chapters an AI response draws on.
type References struct {
	VerseNumbers   []int `json:"verseNumbers"`
	ChapterNumbers []int `json:"chapterNumbers"`
}

// AIResponse is the output shape of the response generator collaborator.
type AIResponse struct {
	Message    string      `json:"message"`
	References *References `json:"references,omitempty"`
}

// ChatMessage is one side of a conversation transcript.
type ChatMessage struct {
	Id         ID          `json:"id"`
	SessionID  string      `json:"sessionId"`
	FromUser   bool        `json:"isUser"`
	Message    string      `json:"message"`
	Timestamp  time.Time   `json:"timestamp"`
	References *References `json:"metadata,omitempty"`
}

// ResultRef is a compact reference to one search result, kept in history
// records instead of the full verse text.
type ResultRef struct {
	Number    int     `json:"number"`
	Score     float32 `json:"score"`
	Relevance float32 `json:"relevance"`
	Fallback  bool    `json:"isFallback"`
}

// SearchRecord captures one search request for per-session history.
type SearchRecord struct {
	Id        ID          `json:"id"`
	SessionID string      `json:"sessionId"`
	Query     string      `json:"query"`
	Results   []ResultRef `json:"results"`
	Timestamp time.Time   `json:"timestamp"`
}
