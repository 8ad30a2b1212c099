package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
)

// BatchProcessor copies batches of symptom reports into the destination
// repository, skipping reports that fail validation.
type BatchProcessor struct {
	dest           storage.ReportRepository
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for destination writes
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(dest storage.ReportRepository, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		dest:           dest,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process writes a batch of reports to the destination with retry.
// Reports that fail validation are dropped from the batch; the number of
// dropped reports is returned alongside any write error.
func (bp *BatchProcessor) Process(ctx context.Context, reports []*core.SymptomReport) (skipped int, err error) {
	if len(reports) == 0 {
		return 0, nil
	}

	valid := make([]*core.SymptomReport, 0, len(reports))
	for _, report := range reports {
		// ValidateReport covers classification shape and embedding dimension
		if core.ValidateReport(report) != nil {
			skipped++
			continue
		}
		valid = append(valid, report)
	}

	if len(valid) == 0 {
		return skipped, nil
	}

	err = RetryWithBackoff(ctx, func() error {
		_, werr := bp.dest.AddReports(ctx, valid...)
		return werr
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return skipped, fmt.Errorf("failed to write batch after %d attempts: %w", bp.maxRetries, err)
	}

	return skipped, nil
}
