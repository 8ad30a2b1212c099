package migrate

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
	"github.com/poiesic/triagit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryReports(t *testing.T) storage.ReportRepository {
	t.Helper()

	reports, keywords, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		keywords.Close()
		reports.Close()
		backend.Close()
	})
	return reports
}

func successReport(description string, createdAt time.Time) *core.SymptomReport {
	embedding := make([]float32, core.EmbeddingDim)
	embedding[0] = 1.0

	return &core.SymptomReport{
		Description: description,
		Urgency:     core.UrgencyNonUrgent,
		Category:    "Pain",
		Embedding:   embedding,
		Status:      core.StatusSuccess,
		CreatedAt:   createdAt,
	}
}

func failedReport(description string, createdAt time.Time) *core.SymptomReport {
	return &core.SymptomReport{
		Description:  description,
		Status:       core.StatusFailed,
		ErrorMessage: "upstream timeout",
		CreatedAt:    createdAt,
	}
}

func TestReportIterator_Batches(t *testing.T) {
	source := newMemoryReports(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 7; i++ {
		_, err := source.AddReports(ctx, successReport(fmt.Sprintf("symptom number %d", i), now.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	iterator := NewReportIterator(source, 3)

	var batchSizes []int
	total := 0
	err := iterator.ForEach(ctx, func(batch []*core.SymptomReport) error {
		batchSizes = append(batchSizes, len(batch))
		total += len(batch)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
	assert.Equal(t, 7, total)
}

func TestReportIterator_Empty(t *testing.T) {
	source := newMemoryReports(t)

	iterator := NewReportIterator(source, 10)
	calls := 0
	err := iterator.ForEach(context.Background(), func(batch []*core.SymptomReport) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestReportIterator_StopsOnError(t *testing.T) {
	source := newMemoryReports(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		_, err := source.AddReports(ctx, successReport(fmt.Sprintf("report %d", i), now.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	iterator := NewReportIterator(source, 2)
	calls := 0
	err := iterator.ForEach(ctx, func(batch []*core.SymptomReport) error {
		calls++
		return fmt.Errorf("batch rejected")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestMigrator_MovesAllReports(t *testing.T) {
	source := newMemoryReports(t)
	dest := newMemoryReports(t)
	ctx := context.Background()

	now := time.Now().UTC()
	_, err := source.AddReports(ctx,
		successReport("sharp pain behind the left eye", now.Add(-2*time.Hour)),
		failedReport("dizzy spells in the morning", now.Add(-1*time.Hour)),
		successReport("swollen ankle after a fall", now),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	migrator, err := NewMigrator(source, dest, &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}, &buf)
	require.NoError(t, err)

	result, err := migrator.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Migrated)
	assert.Zero(t, result.Skipped)

	moved, err := dest.GetRecentReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, moved, 3)
	assert.Equal(t, "swollen ankle after a fall", moved[0].Description)
	assert.Contains(t, buf.String(), "Migration complete")
}

func TestMigrator_SkipsInvalidReports(t *testing.T) {
	source := newMemoryReports(t)
	dest := newMemoryReports(t)
	ctx := context.Background()

	now := time.Now().UTC()

	// The source store does not validate on write, so a truncated embedding
	// can only be caught at migration time.
	truncated := successReport("numb fingers on waking", now.Add(-1*time.Hour))
	truncated.Embedding = truncated.Embedding[:8]

	_, err := source.AddReports(ctx,
		truncated,
		successReport("persistent dry cough", now),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	migrator, err := NewMigrator(source, dest, nil, &buf)
	require.NoError(t, err)

	result, err := migrator.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Migrated)
	assert.Equal(t, 1, result.Skipped)

	moved, err := dest.GetRecentReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, "persistent dry cough", moved[0].Description)
}

// countingSource counts date-range scans so tests can pin how often the
// source is read.
type countingSource struct {
	storage.ReportRepository
	rangeQueries int
}

func (c *countingSource) GetReportsByDateRange(ctx context.Context, start, end time.Time) ([]*core.SymptomReport, error) {
	c.rangeQueries++
	return c.ReportRepository.GetReportsByDateRange(ctx, start, end)
}

func TestMigrator_ReadsSourceOnce(t *testing.T) {
	source := &countingSource{ReportRepository: newMemoryReports(t)}
	dest := newMemoryReports(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		_, err := source.AddReports(ctx, successReport(fmt.Sprintf("symptom %d", i), now.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	migrator, err := NewMigrator(source, dest, &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}, &buf)
	require.NoError(t, err)

	result, err := migrator.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Migrated)
	assert.Equal(t, 1, source.rangeQueries)
}

func TestMigrator_EmptySource(t *testing.T) {
	source := newMemoryReports(t)
	dest := newMemoryReports(t)

	var buf bytes.Buffer
	migrator, err := NewMigrator(source, dest, nil, &buf)
	require.NoError(t, err)

	result, err := migrator.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Migrated)
	assert.Zero(t, result.Skipped)
	assert.Contains(t, buf.String(), "No reports found")
}

func TestNewMigrator_RequiresRepositories(t *testing.T) {
	repo := newMemoryReports(t)

	_, err := NewMigrator(nil, repo, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrSourceRequired)

	_, err = NewMigrator(repo, nil, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrDestinationRequired)
}
