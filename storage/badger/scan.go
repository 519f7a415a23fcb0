package badger

import (
	"context"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
	"github.com/dgraph-io/badger/v4"
)

// ScanRepository implements storage.ScanRepository for BadgerDB.
// Scan events are append-only; keys embed the timestamp so iteration yields
// time order.
type ScanRepository struct {
	backend *Backend
}

var _ storage.ScanRepository = (*ScanRepository)(nil)

// NewScanRepository creates a new ScanRepository.
func NewScanRepository(backend *Backend) *ScanRepository {
	return &ScanRepository{backend: backend}
}

// Close implements storage.Repository.
func (r *ScanRepository) Close() error {
	return nil
}

// MaxWriteBatch delegates to the backend.
func (r *ScanRepository) MaxWriteBatch() int {
	return r.backend.MaxWriteBatch()
}

// AppendScans appends scan events.
func (r *ScanRepository) AppendScans(ctx context.Context, events ...*core.ScanEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, event := range events {
			value, err := storage.MarshalScanEvent(event)
			if err != nil {
				return err
			}
			key := makeScanKey(event.Timestamp, event.From, event.To)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AllScans returns every stored scan event in time order.
func (r *ScanRepository) AllScans(ctx context.Context) ([]*core.ScanEvent, error) {
	var events []*core.ScanEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(scanPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				event, err := storage.UnmarshalScanEvent(val)
				if err != nil {
					return err
				}
				events = append(events, event)
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
	return events, nil
}
