// Copyright 2025 The Kuralverse Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidVerse indicates a Verse failed validation.
	ErrInvalidVerse = errors.New("invalid verse")

	// ErrInvalidVerseNumber indicates a verse number outside 1..1330.
	ErrInvalidVerseNumber = errors.New("verse number must be positive")

	// ErrEmptyVerseText indicates both language renderings are empty.
	ErrEmptyVerseText = errors.New("verse text cannot be empty")

	// ErrEmptyMessage indicates a chat message with no content.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrEmptySessionID indicates a chat or history record without a session.
	ErrEmptySessionID = errors.New("session id cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
