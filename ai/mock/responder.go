package mock

import (
	"context"
	"fmt"

	"github.com/kuralverse/kuralsearch/ai"
)

// MockResponder is a test double for ai.ResponseGenerator.
// It allows custom behavior injection via function fields.
type MockResponder struct {
	// GenerateResponseFunc is called by GenerateResponse if set.
	// If nil, uses default deterministic behavior.
	GenerateResponseFunc func(ctx context.Context, message string, grounding []ai.GroundingVerse) (*ai.GeneratedResponse, error)

	callCount int
}

// NewMockResponder creates a mock responder with default deterministic behavior.
func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

// GenerateResponse produces a deterministic answer citing the first
// grounding verse when one is present.
func (m *MockResponder) GenerateResponse(ctx context.Context, message string, grounding []ai.GroundingVerse) (*ai.GeneratedResponse, error) {
	m.callCount++

	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, message, grounding)
	}

	response := &ai.GeneratedResponse{
		Message:        fmt.Sprintf("Mock answer to: %s", message),
		VerseNumbers:   []int{},
		ChapterNumbers: []int{},
	}
	if len(grounding) > 0 {
		response.Message = fmt.Sprintf("Mock answer to: %s (see Verse %d)", message, grounding[0].Number)
		response.VerseNumbers = []int{grounding[0].Number}
		if grounding[0].Chapter > 0 {
			response.ChapterNumbers = []int{grounding[0].Chapter}
		}
	}
	return response, nil
}

// CallCount returns the number of times GenerateResponse was called.
func (m *MockResponder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockResponder) Reset() {
	m.callCount = 0
	m.GenerateResponseFunc = nil
}
