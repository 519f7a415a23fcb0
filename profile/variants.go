package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/confero/confero/core"
)

// VariantSpec describes one experiment arm: weight overrides applied on
// top of a base profile.
type VariantSpec struct {
	// Label distinguishes the arm, e.g. "A" or "B".
	Label string
	// Weights override or extend the base profile's weights.
	Weights map[string]float64
}

// CreateVariants clones a base profile once per spec, applies each
// spec's weight overrides, and stores the results. Variants are never
// defaults. All variants are validated before any is written.
func (m *Manager) CreateVariants(ctx context.Context, baseID string, specs []VariantSpec) ([]*core.WeightProfile, error) {
	base, err := m.store.GetProfile(ctx, baseID)
	if err != nil {
		return nil, err
	}

	variants := make([]*core.WeightProfile, 0, len(specs))
	for _, spec := range specs {
		v := base.Clone()
		v.Id = uuid.NewString()
		v.Name = fmt.Sprintf("%s (variant %s)", base.Name, spec.Label)
		v.IsDefault = false
		for metric, weight := range spec.Weights {
			v.Weights[metric] = weight
		}
		if err := core.ValidateWeightProfile(v); err != nil {
			return nil, fmt.Errorf("variant %s: %w", spec.Label, err)
		}
		variants = append(variants, v)
	}

	now := time.Now().UTC()
	for _, v := range variants {
		v.CreatedAt = now
		v.UpdatedAt = now
		if err := m.store.PutProfile(ctx, v); err != nil {
			return nil, fmt.Errorf("storing variant %s: %w", v.Name, err)
		}
	}
	m.logger.Info("profile variants created", "base", baseID, "count", len(variants))
	return variants, nil
}
