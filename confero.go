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

// Package confero is a matchmaking engine for conference corpora:
// companies, sponsors, and attendees scored pairwise under named weight
// profiles, with explainable per-metric contributions.
package confero

import (
	"log/slog"
	"time"

	"github.com/confero/confero/ai"
	"github.com/confero/confero/ai/openai"
	"github.com/confero/confero/attendee"
	"github.com/confero/confero/config"
	"github.com/confero/confero/ingest"
	"github.com/confero/confero/match"
	"github.com/confero/confero/profile"
	"github.com/confero/confero/signal"
	"github.com/confero/confero/storage/badger"
	"github.com/confero/confero/taxonomy"
)

// System wires the storage backend, engines, and managers over one
// database. Close when done.
type System struct {
	repos    *badger.Repositories
	cfg      *config.Config
	embedder ai.Embedder
	profiles *profile.Manager
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*System)

// WithEmbedder injects an embedding service; without one (and without
// an embedding host in the config) ingestion skips vector enrichment.
func WithEmbedder(embedder ai.Embedder) SystemOption {
	return func(s *System) { s.embedder = embedder }
}

// Open creates a System over the database named in the config. An empty
// DBPath opens an in-memory database.
func Open(cfg *config.Config, opts ...SystemOption) (*System, error) {
	if cfg == nil {
		cfg = config.New()
	}

	var (
		repos *badger.Repositories
		err   error
	)
	if cfg.DBPath == "" {
		repos, err = badger.NewMemoryRepositories()
	} else {
		repos, err = badger.NewRepositories(cfg.DBPath)
	}
	if err != nil {
		return nil, err
	}

	s := &System{
		repos:  repos,
		cfg:    cfg,
		logger: slog.Default().With("component", "confero"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.embedder == nil && cfg.EmbeddingHost != "" {
		embedder, err := openai.NewEmbedder(ai.NewConfig(
			ai.WithHost(cfg.EmbeddingHost),
			ai.WithModel(cfg.EmbeddingModel),
		))
		if err != nil {
			repos.Close()
			return nil, err
		}
		s.embedder = embedder
	}

	s.profiles = profile.NewManager(repos.Profiles)
	return s, nil
}

// Close releases the underlying database.
func (s *System) Close() error {
	if err := s.repos.Close(); err != nil {
		s.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

// Repositories exposes the underlying stores.
func (s *System) Repositories() *badger.Repositories {
	return s.repos
}

// Profiles returns the weight profile manager.
func (s *System) Profiles() *profile.Manager {
	return s.profiles
}

// NewMatchEngine builds a match engine tuned from the config.
func (s *System) NewMatchEngine() *match.Engine {
	signals := signal.NewEngine(signal.WithConfig(signal.Config{
		DateHorizonDays: s.cfg.DateHorizonDays,
		Temperature:     s.cfg.Temperature,
		StageMatrix:     signal.DefaultStageMatrix(),
	}))
	attendees := attendee.NewEngine(attendee.WithConfig(attendee.Config{
		ScanHorizon:      time.Duration(s.cfg.ScanHorizonHours) * time.Hour,
		MaxScanBoost:     attendee.DefaultConfig().MaxScanBoost,
		RelatedLocations: attendee.DefaultConfig().RelatedLocations,
	}))
	return match.NewEngine(
		s.repos.Actors, s.repos.Matches, s.repos.Scans, s.profiles,
		match.WithSignalEngine(signals),
		match.WithAttendeeEngine(attendees),
		match.WithWorkers(s.cfg.Workers),
		match.WithProfileCacheTTL(s.cfg.ProfileCacheTTL),
	)
}

// NewIngestProcessor builds an ingest processor, with embedding
// enrichment when an embedder is configured.
func (s *System) NewIngestProcessor() *ingest.Processor {
	opts := []ingest.Option{}
	if s.embedder != nil {
		opts = append(opts, ingest.WithEmbedder(s.embedder))
	}
	return ingest.NewProcessor(s.repos.Actors, s.repos.IngestLogs, opts...)
}

// NewTaxonomyAnalyzer builds a taxonomy analyzer.
func (s *System) NewTaxonomyAnalyzer() *taxonomy.Analyzer {
	return taxonomy.NewAnalyzer(s.repos.Actors,
		taxonomy.WithSampleLimit(s.cfg.TaxonomySampleLimit))
}
