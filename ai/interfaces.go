package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// GroundingVerse is one retrieved verse handed to the response generator as
// context for a grounded answer.
type GroundingVerse struct {
	// Number is the verse number (1..1330).
	Number int

	// Chapter is the chapter number the verse belongs to.
	Chapter int

	// ChapterName is the chapter's English title.
	ChapterName string

	// Text is the verse's English rendering.
	Text string

	// Explanation is the English explanation, empty if unavailable.
	Explanation string
}

// GeneratedResponse is a grounded chat answer with extracted references.
type GeneratedResponse struct {
	// Message is the generated answer text.
	Message string

	// VerseNumbers are verse references found in the answer.
	VerseNumbers []int

	// ChapterNumbers are the chapters of the grounding verses, deduplicated.
	ChapterNumbers []int
}

// ResponseGenerator produces grounded conversational answers about verses.
// Implementations must be thread-safe for concurrent use.
type ResponseGenerator interface {
	// GenerateResponse answers a user message using the grounding verses as
	// context. Implementations degrade gracefully: when the model is
	// unreachable they return a canned response instead of an error, so a
	// chat turn never fails outright.
	GenerateResponse(ctx context.Context, message string, grounding []GroundingVerse) (*GeneratedResponse, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and ResponseGenerator instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ResponseGenerator returns the grounded chat service.
	// The returned ResponseGenerator is safe for concurrent use.
	ResponseGenerator() ResponseGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
