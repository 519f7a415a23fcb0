package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
	"github.com/dgraph-io/badger/v4"
)

// MatchRepository implements storage.MatchRepository for BadgerDB.
type MatchRepository struct {
	backend *Backend
}

var _ storage.MatchRepository = (*MatchRepository)(nil)

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository(backend *Backend) *MatchRepository {
	return &MatchRepository{backend: backend}
}

// Close implements storage.Repository.
func (r *MatchRepository) Close() error {
	return nil
}

// MaxWriteBatch delegates to the backend.
func (r *MatchRepository) MaxWriteBatch() int {
	return r.backend.MaxWriteBatch()
}

// PutMatches inserts or replaces match edges as one atomic batch.
// The batch must respect MaxWriteBatch; oversized batches are rejected so the
// caller's chunking bug surfaces instead of a silent badger failure.
func (r *MatchRepository) PutMatches(ctx context.Context, matches ...*core.Match) error {
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > r.MaxWriteBatch() {
		return fmt.Errorf("%w: %d > %d", storage.ErrBatchLimit, len(matches), r.MaxWriteBatch())
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, match := range matches {
			value, err := storage.MarshalMatch(match)
			if err != nil {
				return err
			}
			if err := tx.Set(makeMatchKey(match.Id), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetMatch retrieves a match by its canonical pair id.
func (r *MatchRepository) GetMatch(ctx context.Context, id string) (*core.Match, error) {
	var match *core.Match
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMatchKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			match, err = storage.UnmarshalMatch(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return match, nil
}

// MatchesForActor returns stored matches involving the actor, best first.
func (r *MatchRepository) MatchesForActor(ctx context.Context, actorID string, limit int) ([]*core.Match, error) {
	var matches []*core.Match
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(matchPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				match, err := storage.UnmarshalMatch(val)
				if err != nil {
					return err
				}
				if match.ActorA == actorID || match.ActorB == actorID {
					matches = append(matches, match)
				}
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

	slices.SortFunc(matches, func(a, b *core.Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// DeleteAllMatches clears the derived match set.
func (r *MatchRepository) DeleteAllMatches(ctx context.Context) error {
	// Collect keys first; deleting during iteration invalidates the iterator.
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(matchPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	// Delete in chunks bounded by the batch ceiling.
	limit := r.MaxWriteBatch()
	for start := 0; start < len(keys); start += limit {
		end := min(start+limit, len(keys))
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, key := range keys[start:end] {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}
	return nil
}
