package badger

import (
	"context"
	"errors"
	"time"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
	"github.com/dgraph-io/badger/v4"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) *ProfileRepository {
	return &ProfileRepository{backend: backend}
}

// Close implements storage.Repository.
func (r *ProfileRepository) Close() error {
	return nil
}

// MaxWriteBatch delegates to the backend.
func (r *ProfileRepository) MaxWriteBatch() int {
	return r.backend.MaxWriteBatch()
}

// PutProfile inserts or replaces a weight profile.
func (r *ProfileRepository) PutProfile(ctx context.Context, profile *core.WeightProfile) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		if profile.CreatedAt.IsZero() {
			profile.CreatedAt = now
		}
		profile.UpdatedAt = now

		value, err := storage.MarshalProfile(profile)
		if err != nil {
			return err
		}
		if err := tx.Set(makeProfileKey(profile.Id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves a profile by id.
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*core.WeightProfile, error) {
	var profile *core.WeightProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeProfileKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			profile, err = storage.UnmarshalProfile(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles returns all stored profiles.
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*core.WeightProfile, error) {
	var profiles []*core.WeightProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				profile, err := storage.UnmarshalProfile(val)
				if err != nil {
					return err
				}
				profiles = append(profiles, profile)
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
	return profiles, nil
}

// DeleteProfile removes a profile by id.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
