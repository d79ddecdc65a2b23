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

package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/kuralverse/kuralsearch/ai"
	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/index"
	"github.com/kuralverse/kuralsearch/storage"
)

const (
	// DefaultK is the result count used when the caller asks for none.
	DefaultK = 5

	// MaxK caps the result count.
	MaxK = 50

	defaultStageTimeout = 10 * time.Second
)

// Searcher orchestrates semantic retrieval: it validates the query, encodes
// it, queries the index, tops up with fallback verses, rescales relevance,
// hydrates verse records, and orders the results.
//
// Encoder or index failure never fails a search; it degrades the whole
// result set to fallback entries. The only error callers see for a
// well-formed request is a storage failure.
type Searcher struct {
	verses   storage.VerseRepository
	idx      index.Index
	embedder ai.Embedder
	fallback FallbackPolicy
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTimeout bounds the encoding stage and the index stage individually.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Searcher) { s.timeout = timeout }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) { s.logger = logger }
}

// WithFallbackPolicy overrides the default uniform random sampler.
func WithFallbackPolicy(policy FallbackPolicy) Option {
	return func(s *Searcher) { s.fallback = policy }
}

// NewSearcher creates a retrieval orchestrator over the given collaborators.
func NewSearcher(verses storage.VerseRepository, idx index.Index, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if verses == nil {
		return nil, ErrVerseRepositoryRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		verses:   verses,
		idx:      idx,
		embedder: embedder,
		timeout:  defaultStageTimeout,
		logger:   slog.Default().With("component", "searcher"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fallback == nil {
		s.fallback = NewRandomSampler(verses)
	}
	return s, nil
}

// Search runs a semantic search and returns min(k, corpus size) results.
func (s *Searcher) Search(ctx context.Context, query string, k int) ([]core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, k, &noopMonitor{})
}

// SearchWithMonitor runs a semantic search, reporting intermediate stages
// to the monitor.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, k int, monitor SearchMonitor) ([]core.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	k = clampK(k)
	monitor.Start(query, k)

	corpusSize, err := s.verses.Count(ctx)
	if err != nil {
		return nil, err
	}
	target := k
	if corpusSize < target {
		target = corpusSize
	}
	if target == 0 {
		results := []core.SearchResult{}
		monitor.Finish(results)
		return results, nil
	}

	neighbors, err := s.retrieve(ctx, query, k, monitor)
	if err != nil {
		s.logger.Warn("retrieval degraded to fallback", "query", query, "err", err)
		neighbors = nil
	}
	neighbors = dedupeNeighbors(neighbors)
	if len(neighbors) > target {
		neighbors = neighbors[:target]
	}
	rescaleRelevance(neighbors)

	if missing := target - len(neighbors); missing > 0 {
		exclude := make(map[int]bool, len(neighbors))
		for _, n := range neighbors {
			exclude[n.Number] = true
		}

		numbers, err := s.fallback.Select(ctx, exclude, missing)
		if err != nil {
			return nil, err
		}
		monitor.FallbackUsed(numbers)
		for _, number := range numbers {
			neighbors = append(neighbors, index.Neighbor{
				Number:    number,
				Relevance: core.FallbackRelevance,
				Fallback:  true,
			})
		}
	}

	results, err := s.hydrate(ctx, neighbors, monitor)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Relevance != results[j].Relevance {
			return results[i].Relevance > results[j].Relevance
		}
		return results[i].Verse.Number < results[j].Verse.Number
	})

	monitor.Finish(results)
	return results, nil
}

// retrieve encodes the query and asks the index for neighbors. Each stage
// runs under its own timeout; failures are classified for the caller to
// degrade on.
func (s *Searcher) retrieve(ctx context.Context, query string, k int, monitor SearchMonitor) ([]index.Neighbor, error) {
	encodeCtx, cancelEncode := context.WithTimeout(ctx, s.timeout)
	defer cancelEncode()

	vector, err := s.embedder.EmbedText(encodeCtx, query)
	monitor.AfterEncoding(vector, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingUnavailable, err)
	}
	if len(vector) == 0 {
		return nil, ErrEncodingUnavailable
	}

	queryCtx, cancelQuery := context.WithTimeout(ctx, s.timeout)
	defer cancelQuery()

	neighbors, err := s.idx.Query(queryCtx, vector, k)
	monitor.AfterIndexQuery(neighbors, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return neighbors, nil
}

// hydrate resolves every neighbor to a verse record. The repository's Get
// is total, so unknown numbers come back as placeholders rather than holes.
func (s *Searcher) hydrate(ctx context.Context, neighbors []index.Neighbor, monitor SearchMonitor) ([]core.SearchResult, error) {
	results := make([]core.SearchResult, 0, len(neighbors))
	verses := make([]*core.Verse, 0, len(neighbors))

	for _, n := range neighbors {
		verse, err := s.verses.Get(ctx, n.Number)
		if err != nil {
			return nil, err
		}
		verses = append(verses, verse)
		results = append(results, core.SearchResult{
			Verse:     verse,
			Score:     n.Score,
			Relevance: n.Relevance,
			Fallback:  n.Fallback,
		})
	}

	monitor.AfterHydration(verses)
	return results, nil
}

// dedupeNeighbors keeps the first occurrence of each verse number and drops
// entries without a positive number.
func dedupeNeighbors(neighbors []index.Neighbor) []index.Neighbor {
	seen := make(map[int]bool, len(neighbors))
	deduped := make([]index.Neighbor, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Number <= 0 || seen[n.Number] {
			continue
		}
		seen[n.Number] = true
		deduped = append(deduped, n)
	}
	return deduped
}

// clampK applies the default and bounds for the requested result count.
func clampK(k int) int {
	if k <= 0 {
		return DefaultK
	}
	if k > MaxK {
		return MaxK
	}
	return k
}
