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


package mock

import "github.com/poiesic/triagit/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, relevance checker and classifier instances.
type MockProvider struct {
	embedder   *MockEmbedder
	relevance  *MockRelevanceChecker
	classifier *MockClassifier
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockRelevanceChecker()/GetMockClassifier() to
// access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		relevance:  NewMockRelevanceChecker(),
		classifier: NewMockClassifier(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, relevance *MockRelevanceChecker, classifier *MockClassifier) ai.AIProvider {
	return &MockProvider{
		embedder:   embedder,
		relevance:  relevance,
		classifier: classifier,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// RelevanceChecker returns the mock relevance checker.
func (p *MockProvider) RelevanceChecker() ai.RelevanceChecker {
	return p.relevance
}

// Classifier returns the mock classifier.
func (p *MockProvider) Classifier() ai.Classifier {
	return p.classifier
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockRelevanceChecker returns the underlying mock relevance checker for
// test assertions.
func (p *MockProvider) GetMockRelevanceChecker() *MockRelevanceChecker {
	return p.relevance
}

// GetMockClassifier returns the underlying mock classifier for test assertions.
func (p *MockProvider) GetMockClassifier() *MockClassifier {
	return p.classifier
}
