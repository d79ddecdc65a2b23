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

package memory

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/index"
	"github.com/kuralverse/kuralsearch/storage"
)

const loadBatchSize = 200

// Index is a brute-force cosine-similarity index held in memory.
// The corpus is small (1330 verses) so a linear scan per query is fine.
type Index struct {
	mu       sync.RWMutex
	dim      int
	entries  []entry
	byNumber map[int]int
	logger   *slog.Logger
}

type entry struct {
	number int
	vector []float32
	norm   float32
}

var _ index.Index = (*Index)(nil)

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{
		byNumber: make(map[int]int),
		logger:   slog.Default().With("component", "memory-index"),
	}
}

// Load pages through the repository and indexes every verse that carries an
// embedding vector. Verses without vectors are skipped.
func (idx *Index) Load(ctx context.Context, repo storage.VerseRepository) (int, error) {
	loaded := 0
	offset := 0
	for {
		verses, err := repo.List(ctx, loadBatchSize, offset)
		if err != nil {
			return loaded, err
		}
		if len(verses) == 0 {
			break
		}
		offset += len(verses)

		if err := idx.Upsert(verses...); err != nil {
			return loaded, err
		}
		for _, verse := range verses {
			if len(verse.Vector) > 0 {
				loaded++
			}
		}
	}

	idx.logger.Info("index loaded", "vectors", loaded)
	return loaded, nil
}

// Upsert adds or replaces vectors by verse number. Verses without vectors
// are ignored.
func (idx *Index) Upsert(verses ...*core.Verse) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, verse := range verses {
		if len(verse.Vector) == 0 {
			continue
		}
		if idx.dim == 0 {
			idx.dim = len(verse.Vector)
		} else if len(verse.Vector) != idx.dim {
			return index.ErrDimensionMismatch
		}

		e := entry{
			number: verse.Number,
			vector: verse.Vector,
			norm:   vectorNorm(verse.Vector),
		}
		if pos, ok := idx.byNumber[verse.Number]; ok {
			idx.entries[pos] = e
			continue
		}
		idx.byNumber[verse.Number] = len(idx.entries)
		idx.entries = append(idx.entries, e)
	}

	return nil
}

// Size returns the number of indexed vectors.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Query returns up to k neighbors by descending cosine similarity.
// Ties break toward the lower verse number.
func (idx *Index) Query(ctx context.Context, vector []float32, k int) ([]index.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []index.Neighbor{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) == 0 {
		return []index.Neighbor{}, nil
	}
	if len(vector) != idx.dim {
		return nil, index.ErrDimensionMismatch
	}

	queryNorm := vectorNorm(vector)
	neighbors := make([]index.Neighbor, 0, len(idx.entries))
	for _, e := range idx.entries {
		neighbors = append(neighbors, index.Neighbor{
			Number: e.number,
			Score:  cosine(vector, queryNorm, e.vector, e.norm),
		})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].Number < neighbors[j].Number
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

func vectorNorm(vector []float32) float32 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	return float32(math.Sqrt(sum))
}

func cosine(a []float32, aNorm float32, b []float32, bNorm float32) float32 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot) / (aNorm * bNorm)
}
