package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/retrieval"
	"github.com/kuralverse/kuralsearch/storage"
)

const defaultListLimit = 10

type searchRequest struct {
	Query     string `json:"query"`
	Limit     int    `json:"limit"`
	SessionID string `json:"sessionId"`
}

type searchResponse struct {
	Query   string              `json:"query"`
	Results []core.SearchResult `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := s.searcher.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, retrieval.ErrInvalidQuery) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	if req.SessionID != "" {
		s.recordSearch(r, req.SessionID, req.Query, results)
	}

	s.writeJSON(w, http.StatusOK, searchResponse{Query: req.Query, Results: results})
}

// recordSearch appends the search to the session's history. History is best
// effort; failures never fail the search itself.
func (s *Server) recordSearch(r *http.Request, sessionID, query string, results []core.SearchResult) {
	refs := make([]core.ResultRef, 0, len(results))
	for _, result := range results {
		refs = append(refs, core.ResultRef{
			Number:    result.Verse.Number,
			Score:     result.Score,
			Relevance: result.Relevance,
			Fallback:  result.Fallback,
		})
	}

	_, err := s.chats.AddSearchRecord(r.Context(), &core.SearchRecord{
		SessionID: sessionID,
		Query:     query,
		Results:   refs,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to record search history", "session", sessionID, "err", err)
	}
}

func (s *Server) handleGetVerse(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "verse number must be numeric")
		return
	}

	verse, err := s.verses.Lookup(r.Context(), number)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "verse not found")
			return
		}
		s.logger.Error("verse lookup failed", "number", number, "err", err)
		s.writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	s.writeJSON(w, http.StatusOK, verse)
}

func (s *Server) handleListVerses(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultListLimit)
	offset := queryInt(r, "offset", 0)

	verses, err := s.verses.List(r.Context(), limit, offset)
	if err != nil {
		s.logger.Error("verse listing failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	s.writeJSON(w, http.StatusOK, verses)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
