package ai

import "errors"

// ErrNoEmbedding indicates the model answered an embedding request without
// returning a vector.
var ErrNoEmbedding = errors.New("embedder returned no vector")
