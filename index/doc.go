// Package index defines the nearest-neighbor index abstraction used by
// retrieval, along with permissive decoding for the heterogeneous result
// shapes external index backends produce.
package index
