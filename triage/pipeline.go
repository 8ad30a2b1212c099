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


// Package triage orchestrates the symptom submission pipeline: validate,
// check health relevance, classify with retry, embed, and persist.
package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/triagit/ai"
	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/keyword"
	"github.com/poiesic/triagit/storage"
)

// Pipeline runs symptom descriptions through the triage stages and persists
// the outcome. Successful and failed submissions both produce report rows;
// invalid, off-topic, and rate-limited submissions produce none.
type Pipeline struct {
	reports     storage.ReportRepository
	relevance   ai.RelevanceChecker
	classifier  ai.Classifier
	embedder    ai.Embedder
	filter      *keyword.Filter
	learnPool   *ants.Pool
	retryPolicy RetryPolicy
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithKeywordFilter enables the learned-keyword pre-filter. When the filter
// accepts a description, the relevance model call is skipped; accepted
// descriptions feed their tokens back into the filter asynchronously.
func WithKeywordFilter(filter *keyword.Filter) Option {
	return func(p *Pipeline) error {
		p.filter = filter
		return nil
	}
}

// WithRetryPolicy overrides the classification retry policy.
// Default is DefaultRetryPolicy (3 attempts, 2s apart).
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(p *Pipeline) error {
		p.retryPolicy = policy
		return nil
	}
}

// WithPoolSize sets the worker pool size for async keyword learning.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.learnPool != nil {
			p.learnPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.learnPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new triage pipeline.
func NewPipeline(reports storage.ReportRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if reports == nil {
		return nil, ErrReportRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	learnPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		reports:     reports,
		relevance:   provider.RelevanceChecker(),
		classifier:  provider.Classifier(),
		embedder:    provider.Embedder(),
		learnPool:   learnPool,
		retryPolicy: DefaultRetryPolicy,
		logger:      slog.Default().With("component", "triage-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Submit runs a symptom description through the full pipeline.
//
// Outcomes:
//   - invalid input: core.ErrInvalidInput, nothing persisted, no model calls
//   - not health-related: core.ErrNotHealthRelated, nothing persisted
//   - rate limited: core.ErrRateLimited, nothing persisted
//   - relevance, classification or embedding failure: a failed report row
//     is persisted best-effort and the error returned
//   - success: the persisted report is returned
func (p *Pipeline) Submit(ctx context.Context, description string) (*core.SymptomReport, error) {
	if err := core.ValidateDescription(description); err != nil {
		return nil, err
	}

	related, err := p.checkRelevance(ctx, description)
	if err != nil {
		return nil, p.failSubmission(ctx, description, err)
	}
	if !related {
		// Off-topic input is rejected without a report row
		return nil, core.ErrNotHealthRelated
	}

	classification, err := p.classify(ctx, description)
	if err != nil {
		return nil, p.failSubmission(ctx, description, err)
	}

	embedding, err := p.embedder.EmbedText(ctx, description)
	if err != nil {
		return nil, p.failSubmission(ctx, description, err)
	}
	if len(embedding) != core.EmbeddingDim {
		err = fmt.Errorf("%w: got %d dimensions, want %d", core.ErrEmbeddingFailed, len(embedding), core.EmbeddingDim)
		return nil, p.failSubmission(ctx, description, err)
	}

	report := &core.SymptomReport{
		Description: description,
		Embedding:   embedding,
		Status:      core.StatusSuccess,
	}
	classification.Apply(report)

	if err := core.ValidateReport(report); err != nil {
		return nil, err
	}

	added, err := p.reports.AddReports(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorage, err)
	}

	p.learnKeywords(description)

	p.logger.Info("symptom report created",
		"id", report.Id,
		"urgency", report.Urgency,
		"category", report.Category,
		"label", report.TriageLabel)
	return added[0], nil
}

// checkRelevance runs the keyword pre-filter and, when it misses, the model
// relevance gate. A pre-filter hit saves the model call; a miss is never
// taken as a rejection on its own.
func (p *Pipeline) checkRelevance(ctx context.Context, description string) (bool, error) {
	if p.filter != nil && p.filter.LikelyHealthRelated(ctx, description) {
		p.logger.Debug("keyword pre-filter accepted input")
		return true, nil
	}
	return p.relevance.IsHealthRelated(ctx, description)
}

// classify runs the classifier under the retry policy. Invalid model answers
// and rate limits are not retried.
func (p *Pipeline) classify(ctx context.Context, description string) (core.Classification, error) {
	var result core.Classification
	retryable := func(err error) bool {
		return !errors.Is(err, core.ErrClassificationInvalid) && !core.IsRateLimit(err)
	}
	err := p.retryPolicy.Do(ctx, retryable, func() error {
		var classifyErr error
		result, classifyErr = p.classifier.Classify(ctx, description)
		return classifyErr
	})
	return result, err
}

// failSubmission persists a failed report row unless the error is a rate
// limit. Persistence is best-effort: a storage error is logged, not
// returned, so the caller always sees the pipeline error.
func (p *Pipeline) failSubmission(ctx context.Context, description string, cause error) error {
	if core.IsRateLimit(cause) {
		p.logger.Warn("submission hit rate limit", "err", cause)
		if errors.Is(cause, core.ErrRateLimited) {
			return cause
		}
		return fmt.Errorf("%w: %v", core.ErrRateLimited, cause)
	}

	report := &core.SymptomReport{
		Description:  description,
		Status:       core.StatusFailed,
		ErrorMessage: cause.Error(),
	}
	if _, err := p.reports.AddReports(ctx, report); err != nil {
		p.logger.Error("failed to persist failure report", "err", err)
	}

	p.logger.Error("submission failed", "err", cause)
	return cause
}

// learnKeywords feeds an accepted description's tokens back into the keyword
// filter on the worker pool. Errors are logged, never surfaced.
func (p *Pipeline) learnKeywords(description string) {
	if p.filter == nil {
		return
	}
	err := p.learnPool.Submit(func() {
		if err := p.filter.Learn(context.Background(), description); err != nil {
			p.logger.Error("keyword learning failed", "err", err)
		}
	})
	if err != nil {
		p.logger.Error("could not schedule keyword learning", "err", err)
	}
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.learnPool != nil {
		p.learnPool.Release()
	}
}
