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


// Package typesense implements storage.ReportRepository on a Typesense
// cluster. The embedding field is optional in the collection schema, so
// failed reports without vectors index normally but never match vector
// queries.
package typesense

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	// ReportsCollection is the Typesense collection holding symptom reports.
	ReportsCollection = "symptom_reports"

	defaultConnectionTimeout = 5 * time.Second
)

// Store implements storage.ReportRepository backed by a Typesense cluster.
type Store struct {
	client *typesense.Client
	logger *slog.Logger
}

var _ storage.ReportRepository = (*Store)(nil)

// Option is a functional option for configuring a Store.
type Option func(*options)

type options struct {
	connectionTimeout time.Duration
}

// WithConnectionTimeout overrides the default connection timeout.
func WithConnectionTimeout(d time.Duration) Option {
	return func(o *options) {
		o.connectionTimeout = d
	}
}

// NewStore connects to a Typesense server and ensures the reports collection
// exists.
//
// Returns storage.ReportRepository interface to enforce abstraction.
func NewStore(ctx context.Context, serverURL, apiKey string, opts ...Option) (storage.ReportRepository, error) {
	o := &options{connectionTimeout: defaultConnectionTimeout}
	for _, opt := range opts {
		opt(o)
	}

	client := typesense.NewClient(
		typesense.WithServer(serverURL),
		typesense.WithAPIKey(apiKey),
		typesense.WithConnectionTimeout(o.connectionTimeout),
	)

	store := &Store{
		client: client,
		logger: slog.Default().With("component", "typesense-store"),
	}

	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// initSchema creates the reports collection if it doesn't already exist.
func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.client.Collection(ReportsCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: ReportsCollection,
		Fields: []api.Field{
			{Name: "description", Type: "string"},
			{Name: "urgency", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "category", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "triage_label", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "embedding", Type: "float[]", NumDim: pointer.Int(core.EmbeddingDim), Optional: pointer.True()},
			{Name: "status", Type: "string", Facet: pointer.True()},
			{Name: "error_message", Type: "string", Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err := s.client.Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	s.logger.Info("created collection", "name", ReportsCollection)
	return nil
}

// Close releases resources. The Typesense client needs no explicit cleanup.
func (s *Store) Close() error {
	return nil
}

// AddReports indexes one or more symptom reports.
// Reports with ID=0 get a content-based ID derived from the description and
// creation time.
func (s *Store) AddReports(ctx context.Context, reports ...*core.SymptomReport) ([]*core.SymptomReport, error) {
	for _, report := range reports {
		if report.CreatedAt.IsZero() {
			report.CreatedAt = time.Now().UTC()
		}
		if report.Id == 0 {
			report.Id = core.IDFromContent(report.Description + report.CreatedAt.String())
		}

		if _, err := s.client.Collection(ReportsCollection).Documents().Upsert(ctx, reportToDocument(report)); err != nil {
			return nil, fmt.Errorf("failed to index report: %w", err)
		}
	}
	return reports, nil
}

// GetReport retrieves a single report by ID.
func (s *Store) GetReport(ctx context.Context, id core.ID) (*core.SymptomReport, error) {
	doc, err := s.client.Collection(ReportsCollection).Document(formatID(id)).Retrieve(ctx)
	if err != nil {
		return nil, storage.ErrNotFound
	}
	return documentToReport(doc)
}

// GetRecentReports retrieves the N most recent reports, ordered by creation
// time descending.
func (s *Store) GetRecentReports(ctx context.Context, limit int) ([]*core.SymptomReport, error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String("*"),
		QueryBy: pointer.String("description"),
		SortBy:  pointer.String("created_at:desc"),
		PerPage: pointer.Int(limit),
	}

	result, err := s.client.Collection(ReportsCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return hitsToReports(result)
}

// GetReportsByDateRange retrieves reports where start <= CreatedAt < end,
// ordered by creation time ascending.
func (s *Store) GetReportsByDateRange(ctx context.Context, start, end time.Time) ([]*core.SymptomReport, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	params := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		QueryBy:  pointer.String("description"),
		FilterBy: pointer.String(fmt.Sprintf("created_at:>=%d && created_at:<%d", start.UnixMicro(), end.UnixMicro())),
		SortBy:   pointer.String("created_at:asc"),
		PerPage:  pointer.Int(250),
	}

	result, err := s.client.Collection(ReportsCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports by date range: %w", err)
	}

	return hitsToReports(result)
}

// FindSimilar runs a kNN vector query against the embedding field.
// Documents without an embedding never match, which store-side excludes
// failed reports.
func (s *Store) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	if len(vector) != core.EmbeddingDim {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, want %d",
			storage.ErrDimensionMismatch, len(vector), core.EmbeddingDim)
	}

	params := &api.SearchCollectionParams{
		Q:           pointer.String("*"),
		QueryBy:     pointer.String("description"),
		VectorQuery: pointer.String(buildVectorQuery(vector, limit)),
		PerPage:     pointer.Int(limit),
	}

	result, err := s.client.Collection(ReportsCollection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	var results []*core.SearchResult
	if result.Hits == nil {
		return results, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		report, err := documentToReport(*hit.Document)
		if err != nil {
			return nil, err
		}

		// Typesense reports cosine distance; convert to similarity
		var score float32
		if hit.VectorDistance != nil {
			score = 1 - *hit.VectorDistance
		}
		if score < minSimilarity {
			continue
		}

		results = append(results, &core.SearchResult{
			Report: report,
			Score:  score,
		})
	}

	return results, nil
}

// buildVectorQuery renders the Typesense vector query expression.
// Format: embedding:([v1,v2,...], k:N)
func buildVectorQuery(vector []float32, k int) string {
	var b []byte
	b = append(b, "embedding:(["...)
	for i, v := range vector {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, float64(v), 'f', -1, 32)
	}
	b = append(b, "], k:"...)
	b = strconv.AppendInt(b, int64(k), 10)
	b = append(b, ')')
	return string(b)
}

// hitsToReports converts a search result's hits into reports.
func hitsToReports(result *api.SearchResult) ([]*core.SymptomReport, error) {
	var reports []*core.SymptomReport
	if result.Hits == nil {
		return reports, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		report, err := documentToReport(*hit.Document)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func formatID(id core.ID) string {
	return strconv.FormatUint(uint64(id), 10)
}

// reportToDocument maps a report onto the collection schema.
// Optional fields are omitted when empty so the embedding stays absent for
// failed reports.
func reportToDocument(report *core.SymptomReport) map[string]interface{} {
	doc := map[string]interface{}{
		"id":          formatID(report.Id),
		"description": report.Description,
		"status":      string(report.Status),
		"created_at":  report.CreatedAt.UnixMicro(),
	}
	if report.Urgency != "" {
		doc["urgency"] = string(report.Urgency)
	}
	if report.Category != "" {
		doc["category"] = report.Category
	}
	if report.TriageLabel != "" {
		doc["triage_label"] = report.TriageLabel
	}
	if len(report.Embedding) > 0 {
		doc["embedding"] = report.Embedding
	}
	if report.ErrorMessage != "" {
		doc["error_message"] = report.ErrorMessage
	}
	return doc
}

// documentToReport reconstructs a report from a Typesense document.
func documentToReport(doc map[string]interface{}) (*core.SymptomReport, error) {
	report := &core.SymptomReport{}

	idStr, ok := doc["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: document missing id", storage.ErrSerializationFailed)
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad document id %q", storage.ErrSerializationFailed, idStr)
	}
	report.Id = core.ID(id)

	if v, ok := doc["description"].(string); ok {
		report.Description = v
	}
	if v, ok := doc["urgency"].(string); ok {
		report.Urgency = core.UrgencyLevel(v)
	}
	if v, ok := doc["category"].(string); ok {
		report.Category = v
	}
	if v, ok := doc["triage_label"].(string); ok {
		report.TriageLabel = v
	}
	if v, ok := doc["status"].(string); ok {
		report.Status = core.ReportStatus(v)
	}
	if v, ok := doc["error_message"].(string); ok {
		report.ErrorMessage = v
	}
	if v, ok := doc["created_at"].(float64); ok {
		report.CreatedAt = time.UnixMicro(int64(v)).UTC()
	} else if v, ok := doc["created_at"].(int64); ok {
		report.CreatedAt = time.UnixMicro(v).UTC()
	}
	if raw, ok := doc["embedding"].([]interface{}); ok {
		embedding := make([]float32, len(raw))
		for i, f := range raw {
			fv, ok := f.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: non-numeric embedding element", storage.ErrSerializationFailed)
			}
			embedding[i] = float32(fv)
		}
		report.Embedding = embedding
	}

	return report, nil
}
