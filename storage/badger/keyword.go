package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/storage"
)

// KeywordRepository implements storage.KeywordRepository for BadgerDB.
// Keywords use content-based IDs, so inserting the same keyword twice is a
// silent no-op.
type KeywordRepository struct {
	backend *Backend
}

var _ storage.KeywordRepository = (*KeywordRepository)(nil)

// NewKeywordRepository creates a new KeywordRepository on the given backend.
func NewKeywordRepository(backend *Backend) (*KeywordRepository, error) {
	return &KeywordRepository{
		backend: backend,
	}, nil
}

// Close releases resources. KeywordRepository has no resources to release.
func (r *KeywordRepository) Close() error {
	return nil
}

// AddKeywords inserts keywords, silently skipping ones already present.
func (r *KeywordRepository) AddKeywords(ctx context.Context, entries ...*core.KeywordEntry) ([]*core.KeywordEntry, error) {
	var inserted []*core.KeywordEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.Id == 0 {
				entry.Id = core.IDFromContent(entry.Keyword)
			}

			key := makeKeywordKey(entry.Id)

			// Skip keywords that already exist
			_, err := tx.Get(key)
			if err == nil {
				continue
			}
			if err != badger.ErrKeyNotFound {
				return err
			}

			if entry.CreatedAt.IsZero() {
				entry.CreatedAt = time.Now().UTC()
			}

			if err := tx.Set(key, storage.MarshalKeyword(entry)); err != nil {
				return err
			}
			inserted = append(inserted, entry)
		}
		return tx.Commit()
	}, true)

	return inserted, err
}

// AllKeywords returns every known keyword.
func (r *KeywordRepository) AllKeywords(ctx context.Context) ([]*core.KeywordEntry, error) {
	var results []*core.KeywordEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keywordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.KeywordEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalKeyword(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}
