// Package server exposes the JSON HTTP API: semantic search, verse lookup
// and listing, grounded chat, and per-session history.
package server
