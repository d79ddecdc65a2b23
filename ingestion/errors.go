package ingestion

import "errors"

var (
	// ErrVerseRepositoryRequired is returned when no verse repository is supplied.
	ErrVerseRepositoryRequired = errors.New("verse repository is required")

	// ErrEmbedderRequired is returned when no embedder is supplied.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmptyDataset is returned when the dataset contains no usable rows.
	ErrEmptyDataset = errors.New("dataset contains no verses")
)
