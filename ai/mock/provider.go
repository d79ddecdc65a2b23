package mock

import "github.com/kuralverse/kuralsearch/ai"

// MockProvider is a test double for ai.AIProvider that hands out the mock
// embedder and responder.
type MockProvider struct {
	MockEmbedder  *MockEmbedder
	MockResponder *MockResponder
}

var _ ai.AIProvider = (*MockProvider)(nil)

// NewMockProvider creates a provider with fresh mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder:  NewMockEmbedder(),
		MockResponder: NewMockResponder(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// ResponseGenerator returns the mock chat service.
func (p *MockProvider) ResponseGenerator() ai.ResponseGenerator {
	return p.MockResponder
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
