package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
)

// ReportRepository implements storage.ReportRepository for BadgerDB.
type ReportRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates a new ReportRepository on the given backend.
func NewReportRepository(backend *Backend) (*ReportRepository, error) {
	idSeq, err := backend.GetSequence(reportIDSeq)
	if err != nil {
		return nil, err
	}

	return &ReportRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ReportRepository) Close() error {
	return r.idSeq.Release()
}

// FindSimilar delegates to the backend.
func (r *ReportRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// AddReports adds one or more symptom reports to storage.
// Reports are append-only: every call inserts new rows, failed reports included.
func (r *ReportRepository) AddReports(ctx context.Context, reports ...*core.SymptomReport) ([]*core.SymptomReport, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, report := range reports {
			if report.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				report.Id = core.ID(nextID)
			}

			if report.CreatedAt.IsZero() {
				report.CreatedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeReportKey(report.Id)
			value := storage.MarshalReport(report)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeReportDateKey(report.CreatedAt, report.Id)
			if err := tx.Set(dateKey, storage.MarshalID(report.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return reports, err
}

// GetReport retrieves a single report by ID.
func (r *ReportRepository) GetReport(ctx context.Context, id core.ID) (*core.SymptomReport, error) {
	var result *core.SymptomReport
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeReportKey(id)
		var err error
		result, err = readReport(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetReportsByDateRange retrieves reports within a time range.
func (r *ReportRepository) GetReportsByDateRange(ctx context.Context, start, end time.Time) ([]*core.SymptomReport, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.SymptomReport
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialReportDateKey(start)
		endKey := makePartialReportDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var reportID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				reportID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full report
			report, err := readReport(tx, makeReportKey(reportID))
			if err != nil {
				return err
			}
			if report != nil {
				results = append(results, report)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentReports retrieves the N most recent reports, ordered by creation
// time descending.
func (r *ReportRepository) GetRecentReports(ctx context.Context, limit int) ([]*core.SymptomReport, error) {
	var results []*core.SymptomReport
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent reports first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialReportDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(reportDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var reportID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				reportID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full report
			report, err := readReport(tx, makeReportKey(reportID))
			if err != nil {
				return err
			}
			if report != nil {
				results = append(results, report)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readReport reads a symptom report from the transaction.
func readReport(tx *badger.Txn, key []byte) (*core.SymptomReport, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var report *core.SymptomReport
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		report, unmarshalErr = storage.UnmarshalReport(val)
		return unmarshalErr
	})
	return report, err
}
