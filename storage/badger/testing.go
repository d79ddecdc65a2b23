package badger

import "testing"

// NewMemoryRepositories opens an in-memory backend and both repositories
// for tests. Everything is cleaned up when the test ends.
func NewMemoryRepositories(t *testing.T) (*VerseRepository, *ChatRepository) {
	t.Helper()

	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("failed to open in-memory backend: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })

	verses, err := NewVerseRepository(backend)
	if err != nil {
		t.Fatalf("failed to create verse repository: %v", err)
	}
	t.Cleanup(func() { _ = verses.Close() })

	chats := NewChatRepository(backend)
	return verses, chats
}
