package index

import "errors"

var (
	// ErrUnavailable indicates the index backend could not be reached or
	// failed to answer.
	ErrUnavailable = errors.New("index unavailable")

	// ErrBadPayload indicates the backend's response could not be decoded.
	ErrBadPayload = errors.New("undecodable index payload")

	// ErrDimensionMismatch indicates the query vector's dimension does not
	// match the indexed vectors.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
