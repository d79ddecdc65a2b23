package retrieval

import (
	"context"
	"math/rand"
	"sync"

	"github.com/kuralverse/kuralsearch/storage"
)

// FallbackPolicy picks stand-in verses when retrieval produces fewer
// genuine matches than requested.
type FallbackPolicy interface {
	// Select returns up to n verse numbers not present in exclude.
	// Fewer than n may be returned when the corpus is nearly exhausted.
	Select(ctx context.Context, exclude map[int]bool, n int) ([]int, error)
}

// RandomSampler selects fallback verses uniformly from the ingested corpus.
type RandomSampler struct {
	verses storage.VerseRepository

	mu  sync.Mutex
	rng *rand.Rand
}

var _ FallbackPolicy = (*RandomSampler)(nil)

// SamplerOption configures a RandomSampler.
type SamplerOption func(*RandomSampler)

// WithSeed makes the sampler deterministic, for tests.
func WithSeed(seed int64) SamplerOption {
	return func(s *RandomSampler) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewRandomSampler creates a sampler over the repository's verse numbers.
func NewRandomSampler(verses storage.VerseRepository, opts ...SamplerOption) *RandomSampler {
	sampler := &RandomSampler{
		verses: verses,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(sampler)
	}
	return sampler
}

// Select samples up to n distinct verse numbers outside exclude.
func (s *RandomSampler) Select(ctx context.Context, exclude map[int]bool, n int) ([]int, error) {
	if n <= 0 {
		return []int{}, nil
	}

	numbers, err := s.verses.Numbers(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]int, 0, len(numbers))
	for _, number := range numbers {
		if !exclude[number] {
			candidates = append(candidates, number)
		}
	}

	s.mu.Lock()
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	s.mu.Unlock()

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}
