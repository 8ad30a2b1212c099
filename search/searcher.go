package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/triagit/ai"
	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
)

// DefaultMaxHits is the result count used when callers pass a non-positive
// limit.
const DefaultMaxHits = 5

// Searcher provides semantic similarity search over stored symptom reports.
type Searcher struct {
	store         storage.VectorStore
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity cutoff for matches.
// Default is 0: every nearest neighbor is returned.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher over the given vector store.
func NewSearcher(store storage.VectorStore, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		store:    store,
		embedder: provider.Embedder(),
		logger:   slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches for symptom reports similar to the query.
// Returns up to maxHits results, ranked by similarity score descending.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.FindSimilarWithMonitor(ctx, query, maxHits, nil)
}

// FindSimilarWithMonitor searches for symptom reports similar to the query
// with monitoring. The monitor receives callbacks at each stage of the
// search process.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if err := core.ValidateDescription(query); err != nil {
		return nil, err
	}
	if maxHits <= 0 {
		maxHits = DefaultMaxHits
	}

	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(embedding)

	matches, err := s.store.FindSimilar(ctx, embedding, s.minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar reports", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(matches)

	if matches == nil {
		matches = []*core.SearchResult{}
	}

	monitor.Finish(matches)
	return matches, nil
}
