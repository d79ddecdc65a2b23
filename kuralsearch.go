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

// Package kuralsearch wires the storage, index, AI, and retrieval layers
// into a single service over the Thirukkural corpus.
package kuralsearch

import (
	"context"
	"log/slog"

	"github.com/kuralverse/kuralsearch/ai"
	"github.com/kuralverse/kuralsearch/ai/openai"
	"github.com/kuralverse/kuralsearch/index"
	"github.com/kuralverse/kuralsearch/index/memory"
	"github.com/kuralverse/kuralsearch/ingestion"
	"github.com/kuralverse/kuralsearch/retrieval"
	"github.com/kuralverse/kuralsearch/storage"
	"github.com/kuralverse/kuralsearch/storage/badger"
)

// Service owns the corpus store, the search index, and the AI provider.
type Service struct {
	backend   *badger.Backend
	verseRepo storage.VerseRepository
	chatRepo  storage.ChatRepository
	provider  ai.AIProvider
	idx       index.Index
	memIdx    *memory.Index
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	idx      index.Index
	inMemory bool
}

// WithAIConfig sets the configuration used to build the default AI provider.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) { o.aiConfig = config }
}

// WithAIProvider injects a prebuilt AI provider, bypassing the default
// OpenAI-compatible one. Used by tests.
func WithAIProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) { o.provider = provider }
}

// WithIndex injects a search index, such as the external-process bridge.
// The default is the in-memory index loaded from the corpus.
func WithIndex(idx index.Index) ServiceOption {
	return func(o *serviceOptions) { o.idx = idx }
}

// WithInMemoryStorage keeps the corpus in memory instead of on disk.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) { o.inMemory = true }
}

// NewService opens storage at filePath and wires the service together.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	verseRepo, err := badger.NewVerseRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	chatRepo := badger.NewChatRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			verseRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	service := &Service{
		backend:   backend,
		verseRepo: verseRepo,
		chatRepo:  chatRepo,
		provider:  provider,
		logger:    slog.Default(),
	}

	if options.idx != nil {
		service.idx = options.idx
	} else {
		service.memIdx = memory.NewIndex()
		service.idx = service.memIdx
	}

	return service, nil
}

// LoadIndex populates the in-memory index from the stored corpus.
// It is a no-op when an external index was injected.
func (s *Service) LoadIndex(ctx context.Context) (int, error) {
	if s.memIdx == nil {
		return 0, nil
	}
	return s.memIdx.Load(ctx, s.verseRepo)
}

// Close releases the AI provider and storage.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.verseRepo.Close(); err != nil {
		s.logger.Error("error closing verse repository", "err", err)
		return err
	}
	if err := s.chatRepo.Close(); err != nil {
		s.logger.Error("error closing chat repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) VerseRepository() storage.VerseRepository {
	return s.verseRepo
}

func (s *Service) ChatRepository() storage.ChatRepository {
	return s.chatRepo
}

func (s *Service) Index() index.Index {
	return s.idx
}

func (s *Service) Provider() ai.AIProvider {
	return s.provider
}

// NewSearcher builds a retrieval orchestrator over the service's corpus,
// index, and embedder.
func (s *Service) NewSearcher(opts ...retrieval.Option) (*retrieval.Searcher, error) {
	return retrieval.NewSearcher(s.verseRepo, s.idx, s.provider.Embedder(), opts...)
}

// NewIngestionPipeline builds a seeding pipeline over the service's corpus
// and embedder.
func (s *Service) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.verseRepo, s.provider.Embedder(), opts...)
}
