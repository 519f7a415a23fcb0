package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"strings"
	"time"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
	"github.com/dgraph-io/badger/v4"
)

// ActorRepository implements storage.ActorRepository for BadgerDB.
type ActorRepository struct {
	backend *Backend
}

var _ storage.ActorRepository = (*ActorRepository)(nil)

// NewActorRepository creates a new ActorRepository.
func NewActorRepository(backend *Backend) *ActorRepository {
	return &ActorRepository{backend: backend}
}

// Close implements storage.Repository. The backend owns the database handle.
func (r *ActorRepository) Close() error {
	return nil
}

// MaxWriteBatch delegates to the backend.
func (r *ActorRepository) MaxWriteBatch() int {
	return r.backend.MaxWriteBatch()
}

// PutActors inserts or replaces actors and bumps the corpus revision once.
func (r *ActorRepository) PutActors(ctx context.Context, actors ...*core.Actor) error {
	if len(actors) == 0 {
		return nil
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, actor := range actors {
			if actor.CreatedAt.IsZero() {
				actor.CreatedAt = now
			}
			actor.UpdatedAt = now

			value, err := storage.MarshalActor(actor)
			if err != nil {
				return err
			}
			if err := tx.Set(makeActorKey(actor.Id), value); err != nil {
				return err
			}
			// Name index for exact-name duplicate lookups
			if err := tx.Set(makeActorNameKey(actor.Name), []byte(actor.Id)); err != nil {
				return err
			}
		}
		if err := bumpRevision(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetActor retrieves a single actor by id.
func (r *ActorRepository) GetActor(ctx context.Context, id string) (*core.Actor, error) {
	var actor *core.Actor
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeActorKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			actor, err = storage.UnmarshalActor(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return actor, nil
}

// GetActors retrieves multiple actors by id, skipping missing ones.
func (r *ActorRepository) GetActors(ctx context.Context, ids ...string) ([]*core.Actor, error) {
	actors := make([]*core.Actor, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeActorKey(id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				actor, err := storage.UnmarshalActor(val)
				if err != nil {
					return err
				}
				actors = append(actors, actor)
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
	return actors, nil
}

// FindActorByName finds an actor by exact case-insensitive name.
func (r *ActorRepository) FindActorByName(ctx context.Context, name string) (*core.Actor, error) {
	var id string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeActorNameKey(name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return r.GetActor(ctx, id)
}

// QueryActors returns actors matching the filter.
func (r *ActorRepository) QueryActors(ctx context.Context, filter storage.ActorFilter) ([]*core.Actor, error) {
	var actors []*core.Actor
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(actorPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if filter.Limit > 0 && len(actors) >= filter.Limit {
				break
			}
			var actor *core.Actor
			err := iter.Item().Value(func(val []byte) error {
				var err error
				actor, err = storage.UnmarshalActor(val)
				return err
			})
			if err != nil {
				return err
			}
			if matchesFilter(actor, filter) {
				actors = append(actors, actor)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return actors, nil
}

// CountActors returns the corpus size using a keys-only iteration.
func (r *ActorRepository) CountActors(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(actorPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Revision returns the corpus revision counter.
func (r *ActorRepository) Revision(ctx context.Context) (uint64, error) {
	var rev uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(actorRevKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				rev = 0
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) == 8 {
				rev = binary.BigEndian.Uint64(val)
			}
			return nil
		})
	}, false)
	return rev, err
}

func bumpRevision(tx *badger.Txn) error {
	var rev uint64
	item, err := tx.Get([]byte(actorRevKey))
	if err == nil {
		err = item.Value(func(val []byte) error {
			if len(val) == 8 {
				rev = binary.BigEndian.Uint64(val)
			}
			return nil
		})
		if err != nil {
			return err
		}
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, rev+1)
	return tx.Set([]byte(actorRevKey), buf)
}

func matchesFilter(actor *core.Actor, filter storage.ActorFilter) bool {
	if len(filter.Kinds) > 0 && !containsKind(filter.Kinds, actor.Kind) {
		return false
	}
	if len(filter.Platforms) > 0 && !intersects(actor.Platforms, filter.Platforms) {
		return false
	}
	if len(filter.Markets) > 0 && !intersects(actor.Markets, filter.Markets) {
		return false
	}
	if len(filter.Stages) > 0 && !containsFold(filter.Stages, actor.Stage) {
		return false
	}
	if len(filter.Categories) > 0 && !intersects(actor.Categories, filter.Categories) {
		return false
	}
	return true
}

func containsKind(kinds []core.ActorKind, kind core.ActorKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, x := range values {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if containsFold(b, x) {
			return true
		}
	}
	return false
}
