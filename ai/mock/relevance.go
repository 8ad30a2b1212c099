package mock

import "context"

// MockRelevanceChecker is a test double for ai.RelevanceChecker.
// It allows custom behavior injection via function fields.
type MockRelevanceChecker struct {
	// IsHealthRelatedFunc is called by IsHealthRelated if set.
	// If nil, every input is treated as health-related.
	IsHealthRelatedFunc func(ctx context.Context, text string) (bool, error)

	callCount int
}

// NewMockRelevanceChecker creates a mock relevance checker that accepts
// every input by default.
// Note: Returns concrete type to allow test assertions.
func NewMockRelevanceChecker() *MockRelevanceChecker {
	return &MockRelevanceChecker{}
}

// IsHealthRelated reports whether the text describes a health concern.
func (m *MockRelevanceChecker) IsHealthRelated(ctx context.Context, text string) (bool, error) {
	m.callCount++

	if m.IsHealthRelatedFunc != nil {
		return m.IsHealthRelatedFunc(ctx, text)
	}
	return true, nil
}

// CallCount returns the number of times IsHealthRelated was called.
func (m *MockRelevanceChecker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockRelevanceChecker) Reset() {
	m.callCount = 0
	m.IsHealthRelatedFunc = nil
}
