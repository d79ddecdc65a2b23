// Package badger provides BadgerDB-backed implementations of the storage
// repositories: the verse corpus with placeholder caching and per-session
// chat transcripts and search history.
package badger
