package core

import (
	"fmt"
	"time"
)

// ValidateVerse checks that a verse is well-formed for ingestion.
// A zero or negative number is allowed here; the store assigns the next
// sequential number on Add.
func (v *Verse) ValidateVerse() error {
	if v.Tamil == "" && v.English == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVerse, ErrEmptyVerseText)
	}
	return nil
}

// ValidateChatMessage checks that a chat message is well-formed for storage.
func (m *ChatMessage) ValidateChatMessage() error {
	if m.SessionID == "" {
		return ErrEmptySessionID
	}
	if m.Message == "" {
		return ErrEmptyMessage
	}
	if !m.Timestamp.IsZero() && m.Timestamp.After(time.Now().Add(time.Minute)) {
		return ErrInvalidTimestamp
	}
	return nil
}
