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

package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kuralverse/kuralsearch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Responder implements ai.ResponseGenerator using OpenAI-compatible chat
// APIs (Groq speaks the same protocol).
type Responder struct {
	client llms.Model
	logger *slog.Logger
}

// newResponder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newResponder(config *ai.Config) (*Responder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Responder{
		client: client,
		logger: slog.Default().With("component", "openai-responder"),
	}, nil
}

// NewResponder creates a new response generator using the provided configuration.
//
// Returns ai.ResponseGenerator interface to enforce abstraction.
func NewResponder(config *ai.Config) (ai.ResponseGenerator, error) {
	return newResponder(config)
}

// GenerateResponse answers a user message grounded on the retrieved verses.
// Model failures degrade to a canned response so a chat turn never errors.
func (r *Responder) GenerateResponse(ctx context.Context, message string, grounding []ai.GroundingVerse) (*ai.GeneratedResponse, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildChatSystemPrompt(grounding)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(message),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		r.logger.Error("chat model unreachable, using canned response", "err", err)
		return cannedResponse(grounding), nil
	}
	if len(response.Choices) < 1 {
		r.logger.Warn("no choices returned from chat model")
		return cannedResponse(grounding), nil
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return cannedResponse(grounding), nil
	}

	return &ai.GeneratedResponse{
		Message:        text,
		VerseNumbers:   extractVerseNumbers(text),
		ChapterNumbers: dedupeChapters(groundingChapters(grounding)),
	}, nil
}

// cannedResponse references the grounding verses directly since there is no
// generated text to extract from.
func cannedResponse(grounding []ai.GroundingVerse) *ai.GeneratedResponse {
	numbers := make([]int, 0, len(grounding))
	for _, verse := range grounding {
		numbers = append(numbers, verse.Number)
	}
	return &ai.GeneratedResponse{
		Message:        cannedResponseMessage,
		VerseNumbers:   numbers,
		ChapterNumbers: dedupeChapters(groundingChapters(grounding)),
	}
}

func groundingChapters(grounding []ai.GroundingVerse) []int {
	chapters := make([]int, 0, len(grounding))
	for _, verse := range grounding {
		chapters = append(chapters, verse.Chapter)
	}
	return chapters
}
