// Package mock provides deterministic test doubles for the ai interfaces.
// The mock embedder hashes text into stable vectors so similarity behavior
// is reproducible without a model server.
package mock
