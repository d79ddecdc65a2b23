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

package ingestion

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kuralverse/kuralsearch/ai"
	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/storage"
	"github.com/panjf2000/ants/v2"
)

const defaultBatchSize = 32

// Pipeline seeds the verse corpus: it upserts dataset rows and generates
// embeddings for them in concurrent batches.
type Pipeline struct {
	verses    storage.VerseRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many verses are embedded per model call.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a seeding pipeline.
func NewPipeline(verses storage.VerseRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if verses == nil {
		return nil, ErrVerseRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		verses:    verses,
		embedder:  embedder,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Seed loads a dataset, stores the verses, and embeds them.
// Returns the number of verses stored and the number embedded.
func (p *Pipeline) Seed(ctx context.Context, dataset io.Reader) (stored, embedded int, err error) {
	verses, err := LoadDataset(dataset)
	if err != nil {
		return 0, 0, err
	}

	if _, err := p.verses.Add(ctx, verses...); err != nil {
		return 0, 0, err
	}
	p.logger.Info("dataset stored", "verses", len(verses))

	embedded, err = p.EmbedAll(ctx, verses)
	return len(verses), embedded, err
}

// EmbedAll generates embeddings for the given verses in concurrent batches
// and writes the vectors back to the repository. Failed batches are logged
// and skipped; the count of successfully embedded verses is returned.
func (p *Pipeline) EmbedAll(ctx context.Context, verses []*core.Verse) (int, error) {
	var wg sync.WaitGroup
	var embedded atomic.Int64

	for start := 0; start < len(verses); start += p.batchSize {
		end := start + p.batchSize
		if end > len(verses) {
			end = len(verses)
		}
		batch := verses[start:end]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			count, err := p.embedBatch(ctx, batch)
			if err != nil {
				p.logger.Error("embedding batch failed",
					"first", batch[0].Number, "size", len(batch), "err", err)
				return
			}
			embedded.Add(int64(count))
		})
		if err != nil {
			wg.Done()
			return int(embedded.Load()), err
		}
	}

	wg.Wait()
	p.logger.Info("embedding finished", "embedded", embedded.Load(), "total", len(verses))
	return int(embedded.Load()), nil
}

func (p *Pipeline) embedBatch(ctx context.Context, batch []*core.Verse) (int, error) {
	texts := make([]string, len(batch))
	for i, verse := range batch {
		texts[i] = EmbeddingText(verse)
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}

	count := 0
	for i, verse := range batch {
		if i >= len(vectors) || len(vectors[i]) == 0 {
			p.logger.Warn("no vector for verse", "number", verse.Number)
			continue
		}
		verse.Vector = vectors[i]
		count++
	}

	if _, err := p.verses.Add(ctx, batch...); err != nil {
		return 0, err
	}
	return count, nil
}

// EmbeddingText builds the text that represents a verse in vector space:
// the English rendering plus its explanation when available.
func EmbeddingText(verse *core.Verse) string {
	if verse.EnglishExplanation != nil && *verse.EnglishExplanation != "" {
		return verse.English + " " + *verse.EnglishExplanation
	}
	return verse.English
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
