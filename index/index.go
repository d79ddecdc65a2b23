/*
Copyright 2025 The Kuralverse Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package index

import "context"

// Neighbor is one similarity match returned by an index query.
type Neighbor struct {
	// Number is the verse number of the matched record.
	Number int

	// Score is the raw similarity reported by the index backend.
	Score float32

	// Relevance is the backend's normalized confidence in [0,1], when the
	// backend reports one. Backends that only report raw scores leave it 0
	// and let the caller rescale.
	Relevance float32

	// Fallback marks entries the backend itself flagged as random picks
	// rather than genuine matches.
	Fallback bool
}

// Index answers nearest-neighbor queries over the embedded corpus.
// Implementations must be safe for concurrent queries.
type Index interface {
	// Query returns up to k neighbors ordered by descending similarity.
	// It never pads: fewer than k indexed records means fewer results, and
	// an empty index yields an empty slice.
	Query(ctx context.Context, vector []float32, k int) ([]Neighbor, error)
}
