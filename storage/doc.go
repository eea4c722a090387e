// Copyright 2025 Poiesic Systems
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


// Package storage provides the persistence boundary for rolodex.
//
// The in-memory book is the source of truth while the process runs; this
// package defines the repository interface that turns its
// identifier-to-contact mapping into bytes and back. Allocator state is
// not persisted — it is re-derived from the stored identifiers when the
// book is rebuilt.
//
// Public constructors in backend packages return the ContactRepository
// interface so callers never couple to BadgerDB specifics and tests can
// substitute in-memory implementations.
//
// All repository methods accept context.Context; pass
// context.Background() when no timeout is needed.
package storage
