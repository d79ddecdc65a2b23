package storage

import (
	"context"

	"github.com/kuralverse/kuralsearch/core"
)

// VerseRepository provides operations over the verse corpus.
// Implementations must be thread-safe and support concurrent access.
type VerseRepository interface {
	// Get retrieves a verse by number. It is total: if the number was never
	// ingested it synthesizes, caches, and returns a placeholder so repeated
	// lookups of the same missing number are stable.
	Get(ctx context.Context, number int) (*core.Verse, error)

	// Lookup retrieves a verse by number for public lookups.
	// Returns ErrNotFound for numbers that were never ingested; cached
	// placeholders are treated as not found.
	Lookup(ctx context.Context, number int) (*core.Verse, error)

	// List returns up to limit verses starting at offset, ordered ascending
	// by number. Placeholders are excluded.
	List(ctx context.Context, limit, offset int) ([]*core.Verse, error)

	// Add upserts verses by number. A verse with a non-positive number is
	// assigned the next unused sequential number. Optional fields are
	// normalized to explicit defaults. Returns the stored verses.
	Add(ctx context.Context, verses ...*core.Verse) ([]*core.Verse, error)

	// Count returns the number of ingested verses, excluding placeholders.
	Count(ctx context.Context) (int, error)

	// Numbers returns the numbers of all ingested verses in ascending order,
	// excluding placeholders.
	Numbers(ctx context.Context) ([]int, error)

	// Close releases repository resources.
	Close() error
}

// ChatRepository provides per-session chat transcripts and search history.
type ChatRepository interface {
	// AddMessages appends chat messages to their sessions' transcripts.
	// Messages with Id=0 get a content-derived ID. Sets Timestamp if unset.
	AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error)

	// GetMessages returns a session's transcript in insertion order.
	// Returns an empty slice for unknown sessions.
	GetMessages(ctx context.Context, sessionID string) ([]*core.ChatMessage, error)

	// AddSearchRecord appends a search record to a session's history.
	AddSearchRecord(ctx context.Context, record *core.SearchRecord) (*core.SearchRecord, error)

	// GetSearchRecords returns a session's search history in insertion order.
	// Returns an empty slice for unknown sessions.
	GetSearchRecords(ctx context.Context, sessionID string) ([]*core.SearchRecord, error)

	// Close releases repository resources.
	Close() error
}
