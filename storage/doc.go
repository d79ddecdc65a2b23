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


// Package storage defines the repository interfaces for the verse corpus
// and per-session chat/history records, plus the serialization helpers
// shared by storage backends.
//
// The VerseRepository is the single owner of all verse records. Its Get
// operation is total: unknown numbers yield cached placeholder records so
// downstream hydration never fails.
package storage
