// Package ingestion seeds the verse corpus from dataset exports and
// generates embeddings for semantic search.
package ingestion
