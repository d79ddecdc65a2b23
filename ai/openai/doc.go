// Package openai implements the ai interfaces against OpenAI-compatible
// APIs. Embeddings typically run against a local server (Ollama, LocalAI)
// while chat runs against Groq's hosted endpoint; both speak the same
// protocol so one client library covers both.
package openai
