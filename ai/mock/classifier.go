package mock

import (
	"context"

	"github.com/poiesic/triagit/core"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, every description classifies as Non-Urgent / General.
	ClassifyFunc func(ctx context.Context, description string) (core.Classification, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with a fixed default answer.
// Note: Returns concrete type to allow test assertions.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify returns the injected classification or the fixed default.
func (m *MockClassifier) Classify(ctx context.Context, description string) (core.Classification, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, description)
	}
	return core.Classification{
		Urgency:  core.UrgencyNonUrgent,
		Category: "General",
	}, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}
