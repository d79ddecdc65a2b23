package retrieval

import "errors"

var (
	// ErrInvalidQuery indicates an empty or whitespace-only query.
	// This is the only search error callers are expected to see; encoder
	// and index failures degrade to fallback results instead.
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrEncodingUnavailable classifies encoder failures internally.
	ErrEncodingUnavailable = errors.New("query encoding unavailable")

	// ErrIndexUnavailable classifies index failures internally.
	ErrIndexUnavailable = errors.New("index query unavailable")

	// ErrVerseRepositoryRequired is returned by the constructor when no
	// verse repository is supplied.
	ErrVerseRepositoryRequired = errors.New("verse repository is required")

	// ErrIndexRequired is returned by the constructor when no index is
	// supplied.
	ErrIndexRequired = errors.New("index is required")

	// ErrEmbedderRequired is returned by the constructor when no embedder
	// is supplied.
	ErrEmbedderRequired = errors.New("embedder is required")
)
