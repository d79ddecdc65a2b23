// Package memory implements an exact in-memory cosine-similarity index
// sized for the 1330-verse corpus.
package memory
