// Copyright 2026 Confero Systems
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

// Package storage provides the storage abstraction layer for confero.
//
// This package defines repository interfaces that decouple storage
// implementation from the matching, ingestion, and taxonomy logic. The only
// capabilities required of a backend are get-by-id, filtered query, and a
// batched atomic-write operation with a documented per-batch ceiling
// (MaxWriteBatch); anything beyond that contract is backend-private.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return these interfaces rather than
// concrete types:
//
//	repo, err := badger.NewActorRepository(backend) // returns storage.ActorRepository
//
// which keeps consumers swappable across backends and mockable in tests.
//
// # Chunked Writes
//
// Batch producers (all-pairs match computation, upload ingestion) never issue
// one all-or-nothing transaction across a whole job. They write through
// ChunkedWriter, which flushes and commits whenever the backend's batch
// ceiling is reached. Partial completion is expected and reported through
// counters, not rolled back.
//
// # Thread Safety
//
// All repository implementations must be safe for concurrent use.
package storage
