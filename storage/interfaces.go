package storage

import (
	"context"
	"time"

	"github.com/poiesic/triagit/core"
)

// VectorStore provides similarity search over stored report embeddings.
// Implementations must be thread-safe and support concurrent access.
type VectorStore interface {
	// FindSimilar finds symptom reports similar to the given vector.
	// Returns reports with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	// Failed reports carry no embedding and are never returned.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// ReportRepository provides operations for managing symptom reports.
// Reports are append-only: there are no update or delete operations.
type ReportRepository interface {
	VectorStore

	// AddReports adds one or more symptom reports to storage.
	// For reports with ID=0, generates new IDs.
	// Sets CreatedAt timestamp if not already set.
	// Returns the reports with generated IDs and timestamps populated.
	AddReports(ctx context.Context, reports ...*core.SymptomReport) ([]*core.SymptomReport, error)

	// GetReport retrieves a single report by ID.
	// Returns ErrNotFound if the report doesn't exist.
	GetReport(ctx context.Context, id core.ID) (*core.SymptomReport, error)

	// GetRecentReports retrieves the N most recent reports, ordered by
	// creation time descending. Returns up to limit reports.
	GetRecentReports(ctx context.Context, limit int) ([]*core.SymptomReport, error)

	// GetReportsByDateRange retrieves reports within a time range.
	// Returns reports where start <= CreatedAt < end, ordered by creation time.
	GetReportsByDateRange(ctx context.Context, start, end time.Time) ([]*core.SymptomReport, error)
}

// KeywordRepository provides operations for the known-keyword set used by
// the relevance pre-filter. Keywords are append-only and deduplicated by
// content-based ID.
type KeywordRepository interface {
	// AddKeywords inserts keywords, silently skipping ones already present.
	// Returns the entries that were actually inserted, with timestamps populated.
	AddKeywords(ctx context.Context, entries ...*core.KeywordEntry) ([]*core.KeywordEntry, error)

	// AllKeywords returns every known keyword.
	AllKeywords(ctx context.Context) ([]*core.KeywordEntry, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
