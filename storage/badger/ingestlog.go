package badger

import (
	"context"
	"errors"
	"slices"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
	"github.com/dgraph-io/badger/v4"
)

// IngestLogRepository implements storage.IngestLogRepository for BadgerDB.
type IngestLogRepository struct {
	backend *Backend
}

var _ storage.IngestLogRepository = (*IngestLogRepository)(nil)

// NewIngestLogRepository creates a new IngestLogRepository.
func NewIngestLogRepository(backend *Backend) *IngestLogRepository {
	return &IngestLogRepository{backend: backend}
}

// Close implements storage.Repository.
func (r *IngestLogRepository) Close() error {
	return nil
}

// MaxWriteBatch delegates to the backend.
func (r *IngestLogRepository) MaxWriteBatch() int {
	return r.backend.MaxWriteBatch()
}

// PutIngestLog inserts or replaces an ingest log.
func (r *IngestLogRepository) PutIngestLog(ctx context.Context, log *core.IngestLog) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		value, err := storage.MarshalIngestLog(log)
		if err != nil {
			return err
		}
		if err := tx.Set(makeIngestLogKey(log.Id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetIngestLog retrieves an ingest log by job id.
func (r *IngestLogRepository) GetIngestLog(ctx context.Context, id string) (*core.IngestLog, error) {
	var log *core.IngestLog
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIngestLogKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			log, err = storage.UnmarshalIngestLog(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return log, nil
}

// ListIngestLogs returns logs ordered by start time descending.
func (r *IngestLogRepository) ListIngestLogs(ctx context.Context, limit int) ([]*core.IngestLog, error) {
	var logs []*core.IngestLog
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(ingestLogPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				log, err := storage.UnmarshalIngestLog(val)
				if err != nil {
					return err
				}
				logs = append(logs, log)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(logs, func(a, b *core.IngestLog) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
