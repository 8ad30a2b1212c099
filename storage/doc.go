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


// Package storage provides the storage abstraction layer for triagit.
//
// This package defines repository interfaces that decouple storage implementation
// from business logic. Two backends implement them:
//
//   - storage/badger: embedded key-value store with in-store cosine
//     similarity search; the default for single-node deployments
//   - storage/typesense: dedicated vector search engine for deployments
//     that already run a search cluster
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public constructors
// to enforce abstraction and enable multiple storage backend implementations:
//
//	repo, err := badger.NewReportRepository(path)  // returns storage.ReportRepository interface
//
// This design decision prioritizes:
//   - Abstraction: Prevents accidental coupling to backend specifics
//   - Swappability: Easy to add alternative backends
//   - Testing: Consumers can use mock implementations without modification
//
// Internal package constructors (newBackend, etc.) may return concrete types
// since they're only used within the implementation package.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - VectorStore: similarity search over report embeddings
//   - ReportRepository: append-only symptom report storage plus VectorStore
//   - KeywordRepository: append-only known-keyword set for the relevance
//     pre-filter
//
// # Usage
//
// Create a repository instance:
//
//	repo, err := badger.NewReportRepository("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryReportRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
