package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kuralverse/kuralsearch/ai"
	"github.com/kuralverse/kuralsearch/core"
)

// chatGroundingK is how many verses are retrieved as context for a chat turn.
const chatGroundingK = 3

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	SessionID  string           `json:"sessionId"`
	Message    string           `json:"message"`
	References *core.References `json:"references,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		s.writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = fmt.Sprintf("session-%d", time.Now().UnixNano())
	}

	now := time.Now().UTC()
	_, err := s.chats.AddMessages(r.Context(), &core.ChatMessage{
		SessionID: sessionID,
		FromUser:  true,
		Message:   message,
		Timestamp: now,
	})
	if err != nil {
		s.logger.Error("failed to store user message", "session", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to store message")
		return
	}

	grounding := s.retrieveGrounding(r, message)

	response, err := s.responder.GenerateResponse(r.Context(), message, grounding)
	if err != nil {
		// Responders degrade internally, so this is unexpected; the chat
		// turn still answers.
		s.logger.Error("response generation failed", "session", sessionID, "err", err)
		response = &ai.GeneratedResponse{
			Message:        "I could not compose an answer just now. Please try again.",
			VerseNumbers:   []int{},
			ChapterNumbers: []int{},
		}
	}

	references := &core.References{
		VerseNumbers:   response.VerseNumbers,
		ChapterNumbers: response.ChapterNumbers,
	}

	_, err = s.chats.AddMessages(r.Context(), &core.ChatMessage{
		SessionID:  sessionID,
		FromUser:   false,
		Message:    response.Message,
		Timestamp:  now.Add(time.Microsecond),
		References: references,
	})
	if err != nil {
		s.logger.Warn("failed to store AI reply", "session", sessionID, "err", err)
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		SessionID:  sessionID,
		Message:    response.Message,
		References: references,
	})
}

// retrieveGrounding fetches context verses for a chat turn. Retrieval
// problems degrade to an empty context rather than failing the turn.
func (s *Server) retrieveGrounding(r *http.Request, message string) []ai.GroundingVerse {
	results, err := s.searcher.Search(r.Context(), message, chatGroundingK)
	if err != nil {
		s.logger.Warn("grounding retrieval failed", "err", err)
		return nil
	}

	grounding := make([]ai.GroundingVerse, 0, len(results))
	for _, result := range results {
		verse := result.Verse
		if verse.Placeholder {
			continue
		}
		g := ai.GroundingVerse{
			Number:      verse.Number,
			Chapter:     verse.Chapter,
			ChapterName: verse.ChapterName,
			Text:        verse.English,
		}
		if verse.EnglishExplanation != nil {
			g.Explanation = *verse.EnglishExplanation
		}
		grounding = append(grounding, g)
	}
	return grounding
}

func (s *Server) handleChatTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	messages, err := s.chats.GetMessages(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("transcript lookup failed", "session", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "transcript lookup failed")
		return
	}

	s.writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleSearchHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	records, err := s.chats.GetSearchRecords(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("history lookup failed", "session", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "history lookup failed")
		return
	}

	s.writeJSON(w, http.StatusOK, records)
}
