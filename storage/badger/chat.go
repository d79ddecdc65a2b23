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

package badger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/kuralverse/kuralsearch/core"
	"github.com/kuralverse/kuralsearch/storage"
)

// ChatRepository implements storage.ChatRepository for BadgerDB.
// Transcripts and search history are keyed by session with a timestamp
// component so iteration yields insertion order.
type ChatRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ChatRepository = (*ChatRepository)(nil)

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(backend *Backend) *ChatRepository {
	return &ChatRepository{
		backend: backend,
		logger:  slog.Default().With("component", "chat-repository"),
	}
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *ChatRepository) Close() error {
	return nil
}

// AddMessages appends chat messages to their sessions' transcripts.
func (r *ChatRepository) AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error) {
	now := time.Now().UTC()

	err := r.backend.Update(func(tx *badger.Txn) error {
		for _, message := range messages {
			if err := message.ValidateChatMessage(); err != nil {
				return err
			}
			if message.Timestamp.IsZero() {
				message.Timestamp = now
			}
			if message.Id == 0 {
				message.Id = messageID(message)
			}

			key := makeSessionKey(chatMessagePrefix, message.SessionID, message.Timestamp, message.Id)
			if err := tx.Set(key, storage.MarshalChatMessage(message)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// GetMessages returns a session's transcript in insertion order.
func (r *ChatRepository) GetMessages(ctx context.Context, sessionID string) ([]*core.ChatMessage, error) {
	messages := []*core.ChatMessage{}

	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSessionPrefix(chatMessagePrefix, sessionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				message, err := storage.UnmarshalChatMessage(val)
				if err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// AddSearchRecord appends a search record to a session's history.
func (r *ChatRepository) AddSearchRecord(ctx context.Context, record *core.SearchRecord) (*core.SearchRecord, error) {
	if record.SessionID == "" {
		return nil, core.ErrEmptySessionID
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if record.Id == 0 {
		record.Id = core.IDFromContent(fmt.Sprintf("%s:%s:%d", record.SessionID, record.Query, record.Timestamp.UnixMicro()))
	}

	err := r.backend.Update(func(tx *badger.Txn) error {
		key := makeSessionKey(searchRecordPrefix, record.SessionID, record.Timestamp, record.Id)
		return tx.Set(key, storage.MarshalSearchRecord(record))
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetSearchRecords returns a session's search history in insertion order.
func (r *ChatRepository) GetSearchRecords(ctx context.Context, sessionID string) ([]*core.SearchRecord, error) {
	records := []*core.SearchRecord{}

	err := r.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSessionPrefix(searchRecordPrefix, sessionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalSearchRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func messageID(message *core.ChatMessage) core.ID {
	return core.IDFromContent(fmt.Sprintf("%s:%t:%s:%d",
		message.SessionID, message.FromUser, message.Message, message.Timestamp.UnixMicro()))
}
