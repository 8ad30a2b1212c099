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
	"fmt"
	"io"
	"time"

	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
)

// Config holds configuration for a migration run.
type Config struct {
	// BatchSize is the number of reports to move in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of reports)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for destination writes
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Result summarizes a completed migration run.
type Result struct {
	// Migrated is the number of reports written to the destination
	Migrated int

	// Skipped is the number of reports dropped because they failed validation
	Skipped int
}

// Migrator orchestrates copying every symptom report from a source
// repository into a destination repository.
type Migrator struct {
	source    storage.ReportRepository
	dest      storage.ReportRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ReportIterator
}

// NewMigrator creates a new migrator.
// progress: where to write progress output (typically os.Stderr)
func NewMigrator(source, dest storage.ReportRepository, config *Config, progress io.Writer) (*Migrator, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if dest == nil {
		return nil, ErrDestinationRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Migrator{
		source:    source,
		dest:      dest,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(dest, config.MaxRetries, config.RetryDelay),
		iterator:  NewReportIterator(source, config.BatchSize),
	}, nil
}

// Run executes the migration. Every report in the source is copied to the
// destination; reports failing validation are skipped and counted.
// The source is read exactly once, so the progress total matches what gets
// processed even if the store changes mid-run.
func (m *Migrator) Run(ctx context.Context) (*Result, error) {
	allReports, err := m.iterator.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}

	totalReports := len(allReports)
	if totalReports == 0 {
		fmt.Fprintf(m.progress, "No reports found in source (0 reports)\n")
		return &Result{}, nil
	}

	fmt.Fprintf(m.progress, "Starting migration of %d reports (batch size: %d)\n",
		totalReports, m.config.BatchSize)

	tracker := NewProgressTracker(m.progress, totalReports, m.config.ReportInterval)
	tracker.Start()

	result := &Result{}
	processed := 0

	err = m.iterator.ForEachBatch(ctx, allReports, func(reports []*core.SymptomReport) error {
		skipped, err := m.processor.Process(ctx, reports)
		if err != nil {
			return fmt.Errorf("failed to migrate batch: %w", err)
		}

		result.Skipped += skipped
		result.Migrated += len(reports) - skipped

		processed += len(reports)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return nil, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(m.progress, "Migration complete. Moved %d reports (%d skipped) in %v (%.1f reports/sec)\n",
		result.Migrated, result.Skipped, elapsed.Round(time.Second), float64(totalReports)/elapsed.Seconds())

	return result, nil
}
