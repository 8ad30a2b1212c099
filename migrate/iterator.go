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


package migrate

import (
	"context"
	"time"

	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
)

const (
	// DefaultBatchSize is the default number of reports to move in each batch
	DefaultBatchSize = 100
)

// ReportIterator iterates over all symptom reports in batches.
type ReportIterator struct {
	repo      storage.ReportRepository
	batchSize int
}

// NewReportIterator creates a new report iterator.
// batchSize: number of reports to yield in each batch (must be > 0)
func NewReportIterator(repo storage.ReportRepository, batchSize int) *ReportIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ReportIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Load fetches every stored report in one pass.
func (it *ReportIterator) Load(ctx context.Context) ([]*core.SymptomReport, error) {
	// Wide date range covers every stored report
	startTime := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	endTime := time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return it.repo.GetReportsByDateRange(ctx, startTime, endTime)
}

// ForEach iterates over all symptom reports, calling fn for each batch.
// Iteration stops on first error from fn or when all reports are processed.
// Context cancellation is checked between batches.
func (it *ReportIterator) ForEach(ctx context.Context, fn func([]*core.SymptomReport) error) error {
	reports, err := it.Load(ctx)
	if err != nil {
		return err
	}
	return it.ForEachBatch(ctx, reports, fn)
}

// ForEachBatch feeds an already-loaded report slice to fn in batches.
func (it *ReportIterator) ForEachBatch(ctx context.Context, reports []*core.SymptomReport, fn func([]*core.SymptomReport) error) error {
	if len(reports) == 0 {
		return nil
	}

	for i := 0; i < len(reports); i += it.batchSize {
		end := i + it.batchSize
		if end > len(reports) {
			end = len(reports)
		}

		if err := fn(reports[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
