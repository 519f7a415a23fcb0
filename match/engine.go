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

// Package match turns metric maps into scored, explained matches: the
// weighted aggregation itself, on-demand match queries, and the
// all-pairs batch computation that persists the match graph.
package match

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/confero/confero/attendee"
	"github.com/confero/confero/cache"
	"github.com/confero/confero/core"
	"github.com/confero/confero/profile"
	"github.com/confero/confero/signal"
	"github.com/confero/confero/storage"
)

// DefaultProfileCacheTTL bounds how long a resolved profile is reused
// before it is re-read from the store.
const DefaultProfileCacheTTL = 5 * time.Minute

// DefaultWorkers sizes the all-pairs computation pool.
const DefaultWorkers = 8

// Engine computes matches. Corpus-derived statistics (numeric
// summaries, text index) live in the signal engine and are rebuilt
// lazily whenever the stored corpus revision moves past the one the
// statistics were built from.
type Engine struct {
	actors    storage.ActorRepository
	matches   storage.MatchRepository
	scans     storage.ScanRepository
	profiles  *profile.Manager
	signals   *signal.Engine
	attendees *attendee.Engine

	profileCache *cache.TTL[*core.WeightProfile]
	workers      int
	logger       *slog.Logger

	// mu guards reinitialization of the signal engine and scan index.
	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the all-pairs worker count.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithProfileCacheTTL overrides the profile cache lifetime.
func WithProfileCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.profileCache = cache.New[*core.WeightProfile](ttl) }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSignalEngine injects a pre-configured signal engine.
func WithSignalEngine(s *signal.Engine) Option {
	return func(e *Engine) { e.signals = s }
}

// WithAttendeeEngine injects a pre-configured attendee engine.
func WithAttendeeEngine(a *attendee.Engine) Option {
	return func(e *Engine) { e.attendees = a }
}

// NewEngine creates a match engine over the given repositories.
func NewEngine(
	actors storage.ActorRepository,
	matches storage.MatchRepository,
	scans storage.ScanRepository,
	profiles *profile.Manager,
	opts ...Option,
) *Engine {
	e := &Engine{
		actors:       actors,
		matches:      matches,
		scans:        scans,
		profiles:     profiles,
		profileCache: cache.New[*core.WeightProfile](DefaultProfileCacheTTL),
		workers:      DefaultWorkers,
		logger:       slog.Default().With("component", "match"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.signals == nil {
		e.signals = signal.NewEngine()
	}
	if e.attendees == nil {
		e.attendees = attendee.NewEngine()
	}
	return e
}

// Calculate scores one pair under a profile. The score is the weighted
// mean of the pair's metrics; metrics the pair lacks simply do not
// participate, they are never treated as mismatches. Confidence
// reflects how much data backed the score, not how good the score is.
func (e *Engine) Calculate(a, b *core.Actor, p *core.WeightProfile) *core.Match {
	metrics := e.signals.MetricsWithRules(a, b, &p.Rules)
	for key, value := range e.attendees.Metrics(a, b) {
		metrics[key] = value
	}

	contributions := make([]core.Contribution, 0, len(metrics))
	var weightedSum, weightSum float64
	for key, value := range metrics {
		w := p.Weight(key)
		if w == 0 {
			continue
		}
		weighted := w * value
		weightedSum += weighted
		weightSum += w
		contributions = append(contributions, core.Contribution{
			Metric:   key,
			Value:    value,
			Weight:   w,
			Weighted: weighted,
		})
	}

	score := 0.0
	if weightSum > 0 {
		score = weightedSum / weightSum
	}

	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].Weighted != contributions[j].Weighted {
			return contributions[i].Weighted > contributions[j].Weighted
		}
		return contributions[i].Metric < contributions[j].Metric
	})

	return &core.Match{
		Id:            core.MatchID(a.Id, b.Id),
		ActorA:        a.Id,
		ActorB:        b.Id,
		Score:         score,
		Contributions: contributions,
		Reasons:       signal.Reasons(metrics, 3),
		Confidence:    confidence(a, b, len(metrics)),
		Profile:       p.Id,
		GeneratedAt:   time.Now().UTC(),
	}
}

// confidence blends two completeness views: how filled-in the pair's
// records are, and how many signals the pair actually produced relative
// to a fully-populated baseline.
func confidence(a, b *core.Actor, metricCount int) float64 {
	fields := (core.Completeness(a) + core.Completeness(b)) / 2
	signals := math.Min(1, float64(metricCount)/float64(signal.ExpectedMetricBaseline))
	return (fields + signals) / 2
}

// resolveProfile loads a profile by id through the cache, or falls back
// to the persona default for the given actor kind. Defaults go through
// the same cache, keyed by persona and by their seeded id.
func (e *Engine) resolveProfile(ctx context.Context, profileID string, kind core.ActorKind) (*core.WeightProfile, error) {
	if profileID == "" {
		persona := personaFor(kind)
		key := "default:" + persona
		if p, ok := e.profileCache.Get(key); ok {
			return p, nil
		}
		p, err := e.profiles.Default(ctx, persona)
		if err != nil {
			return nil, err
		}
		e.profileCache.Set(key, p)
		e.profileCache.Set(p.Id, p)
		return p, nil
	}
	if p, ok := e.profileCache.Get(profileID); ok {
		return p, nil
	}
	p, err := e.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	e.profileCache.Set(profileID, p)
	return p, nil
}

func personaFor(kind core.ActorKind) string {
	switch kind {
	case core.ActorKindSponsor:
		return profile.PersonaSponsor
	case core.ActorKindAttendee:
		return profile.PersonaAttendee
	default:
		return profile.PersonaCompany
	}
}

// ensureFresh rebuilds corpus-derived statistics when the stored corpus
// has moved past the revision the statistics were built from. Returns
// the current corpus.
func (e *Engine) ensureFresh(ctx context.Context) ([]*core.Actor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	revision, err := e.actors.Revision(ctx)
	if err != nil {
		return nil, err
	}
	actors, err := e.actors.QueryActors(ctx, storage.ActorFilter{})
	if err != nil {
		return nil, err
	}
	if revision != e.signals.Revision() {
		e.signals.InitializeWithRevision(actors, revision)
		events, err := e.scans.AllScans(ctx)
		if err != nil {
			return nil, err
		}
		e.attendees.SetScanIndex(attendee.NewScanIndex(events))
		e.logger.Info("corpus statistics rebuilt",
			"revision", revision, "actors", len(actors), "scans", len(events))
	}
	return actors, nil
}

// ClearCaches drops the profile cache. Invalidation is explicit: the
// cache never watches the store.
func (e *Engine) ClearCaches() {
	e.profileCache.Clear()
}
