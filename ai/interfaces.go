package ai

import (
	"context"

	"github.com/poiesic/triagit/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// RelevanceChecker decides whether free text describes a health concern.
// Implementations must be thread-safe for concurrent use.
type RelevanceChecker interface {
	// IsHealthRelated reports whether the text plausibly describes medical
	// symptoms or a health concern. A false result with a nil error means
	// the model answered decisively in the negative.
	// Returns an error if the check could not be performed.
	IsHealthRelated(ctx context.Context, text string) (bool, error)
}

// Classifier assigns a triage classification to a symptom description.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// Classify analyzes a symptom description and returns its triage
	// classification. Depending on the implementation this is either an
	// urgency level plus category, or a single triage label.
	// Returns an error wrapping core.ErrClassificationInvalid when the
	// model's answer cannot be mapped to a known classification.
	Classify(ctx context.Context, description string) (core.Classification, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, RelevanceChecker and Classifier
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// RelevanceChecker returns the health relevance gate.
	// The returned RelevanceChecker is safe for concurrent use.
	RelevanceChecker() RelevanceChecker

	// Classifier returns the triage classification service.
	// The returned Classifier is safe for concurrent use.
	Classifier() Classifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
