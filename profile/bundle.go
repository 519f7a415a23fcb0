package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
)

// BundleVersion is the export format version.
const BundleVersion = 1

// Bundle is a portable snapshot of weight profiles, suitable for moving
// configurations between events or environments.
type Bundle struct {
	Version    int                   `json:"version"`
	ExportedAt time.Time             `json:"exported_at"`
	Profiles   []*core.WeightProfile `json:"profiles"`
}

// Export serializes all stored profiles into a bundle.
func (m *Manager) Export(ctx context.Context) ([]byte, error) {
	profiles, err := m.store.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	bundle := Bundle{
		Version:    BundleVersion,
		ExportedAt: time.Now().UTC(),
		Profiles:   profiles,
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding profile bundle: %w", err)
	}
	return data, nil
}

// Import validates and stores every profile in a bundle, returning the
// number imported. Imported profiles are never defaults: a bundle from
// another environment must not displace this one's persona templates.
// When overwrite is false, profiles whose id already exists are skipped.
func (m *Manager) Import(ctx context.Context, data []byte, overwrite bool) (int, error) {
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if bundle.Version != BundleVersion {
		return 0, fmt.Errorf("%w: unsupported version %d", ErrInvalidBundle, bundle.Version)
	}

	// Validate everything before writing anything.
	for _, p := range bundle.Profiles {
		if err := core.ValidateWeightProfile(p); err != nil {
			return 0, fmt.Errorf("%w: profile %q: %v", ErrInvalidBundle, p.Name, err)
		}
	}

	imported := 0
	for _, p := range bundle.Profiles {
		if !overwrite {
			if _, err := m.store.GetProfile(ctx, p.Id); err == nil {
				continue
			} else if !storage.IsNotFound(err) {
				return imported, err
			}
		}
		p.IsDefault = false
		p.UpdatedAt = time.Now().UTC()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = p.UpdatedAt
		}
		if err := m.store.PutProfile(ctx, p); err != nil {
			return imported, fmt.Errorf("importing profile %s: %w", p.Id, err)
		}
		imported++
	}
	m.logger.Info("profiles imported", "count", imported, "total", len(bundle.Profiles))
	return imported, nil
}
