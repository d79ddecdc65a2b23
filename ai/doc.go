// Package ai defines the AI service abstractions used by kuralsearch:
// text embedding for semantic search and grounded response generation for
// the chat surface, plus the shared provider configuration.
package ai
