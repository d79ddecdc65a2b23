// Package retrieval implements the semantic search pipeline over the verse
// corpus: query validation, encoding, nearest-neighbor lookup, fallback
// top-up, relevance rescaling, hydration, and ordering.
package retrieval
