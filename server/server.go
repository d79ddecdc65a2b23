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

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kuralverse/kuralsearch/ai"
	"github.com/kuralverse/kuralsearch/retrieval"
	"github.com/kuralverse/kuralsearch/storage"
)

// Server exposes the JSON API over the corpus, retrieval, and chat layers.
type Server struct {
	verses    storage.VerseRepository
	chats     storage.ChatRepository
	searcher  *retrieval.Searcher
	responder ai.ResponseGenerator
	mux       *http.ServeMux
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates an API server over the given collaborators.
func New(verses storage.VerseRepository, chats storage.ChatRepository, searcher *retrieval.Searcher, responder ai.ResponseGenerator, opts ...Option) *Server {
	s := &Server{
		verses:    verses,
		chats:     chats,
		searcher:  searcher,
		responder: responder,
		mux:       http.NewServeMux(),
		logger:    slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/verse/{number}", s.handleGetVerse)
	s.mux.HandleFunc("GET /api/verses", s.handleListVerses)
	s.mux.HandleFunc("POST /api/chat", s.handleChat)
	s.mux.HandleFunc("GET /api/chat/{sessionId}", s.handleChatTranscript)
	s.mux.HandleFunc("GET /api/history/{sessionId}", s.handleSearchHistory)
}

// Handler returns the server's root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
