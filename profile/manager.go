// Copyright 2026 Confero Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package profile manages weight profiles: validated CRUD over the
// profile store, built-in persona defaults seeded lazily on first use,
// export/import bundles, and A/B variant generation.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
)

// Manager owns validated access to the profile store. Validation is
// all-or-nothing: an invalid profile never reaches the store, and the
// returned error lists every violation at once.
type Manager struct {
	store  storage.ProfileRepository
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a profile manager over the given store.
func NewManager(store storage.ProfileRepository, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: slog.Default().With("component", "profile"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create validates and stores a new profile. Fields the caller leaves
// unset inherit from the profile's persona template; an empty id is
// assigned.
func (m *Manager) Create(ctx context.Context, p *core.WeightProfile) error {
	applyPersonaDefaults(p)
	if err := core.ValidateWeightProfile(p); err != nil {
		return err
	}
	if p.Id == "" {
		p.Id = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := m.store.PutProfile(ctx, p); err != nil {
		return fmt.Errorf("storing profile %s: %w", p.Id, err)
	}
	m.logger.Info("profile created", "id", p.Id, "name", p.Name, "persona", p.Persona)
	return nil
}

// Update validates and replaces an existing profile. The original
// creation time is preserved.
func (m *Manager) Update(ctx context.Context, p *core.WeightProfile) error {
	if err := core.ValidateWeightProfile(p); err != nil {
		return err
	}
	existing, err := m.store.GetProfile(ctx, p.Id)
	if err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if err := m.store.PutProfile(ctx, p); err != nil {
		return fmt.Errorf("updating profile %s: %w", p.Id, err)
	}
	m.logger.Info("profile updated", "id", p.Id, "name", p.Name)
	return nil
}

// Get retrieves a profile by id.
func (m *Manager) Get(ctx context.Context, id string) (*core.WeightProfile, error) {
	return m.store.GetProfile(ctx, id)
}

// List returns all stored profiles.
func (m *Manager) List(ctx context.Context) ([]*core.WeightProfile, error) {
	return m.store.ListProfiles(ctx)
}

// Delete removes a profile. Persona defaults are protected; deleting
// one returns ErrDefaultProtected.
func (m *Manager) Delete(ctx context.Context, id string) error {
	p, err := m.store.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if p.IsDefault {
		return fmt.Errorf("%w: %s", ErrDefaultProtected, p.Name)
	}
	if err := m.store.DeleteProfile(ctx, id); err != nil {
		return err
	}
	m.logger.Info("profile deleted", "id", id, "name", p.Name)
	return nil
}

// Default returns the default profile for a persona, seeding it from
// the built-in template on first use. Seeding is idempotent: the
// template id is derived from the persona, so concurrent or repeated
// calls converge on a single record.
func (m *Manager) Default(ctx context.Context, persona string) (*core.WeightProfile, error) {
	persona = strings.ToLower(strings.TrimSpace(persona))
	existing, err := m.store.GetProfile(ctx, defaultProfileID(persona))
	if err == nil {
		return existing, nil
	}
	if !storage.IsNotFound(err) {
		return nil, err
	}

	p, err := buildDefaultProfile(persona)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, persona)
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := m.store.PutProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("seeding default profile for %s: %w", persona, err)
	}
	m.logger.Info("default profile seeded", "persona", persona, "id", p.Id)
	return p, nil
}

// EnsureDefaults seeds every built-in persona default that is missing.
func (m *Manager) EnsureDefaults(ctx context.Context) error {
	for _, persona := range Personas {
		if _, err := m.Default(ctx, persona); err != nil {
			return err
		}
	}
	return nil
}
