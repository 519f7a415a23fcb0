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

// Package attendee computes the person-level compatibility metrics that
// only apply when at least one side of a pair is a human attendee: role
// intent, badge-scan recency, availability overlap, meeting-location fit,
// bio similarity, and interest-to-capability coverage.
package attendee

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/confero/confero/core"
	"github.com/confero/confero/signal"
)

// Metric keys emitted by this package. Values follow the same convention
// as the corpus-level metrics: always in [0, 1], with zero and NaN
// entries dropped before they reach a score.
const (
	MetricRoleIntent          = "role_intent"
	MetricScanRecency         = "scan_recency"
	MetricAvailabilityOverlap = "availability_overlap"
	MetricLocationFit         = "location_fit"
	MetricBioSimilarity       = "bio_similarity"
	MetricInterestCapability  = "interest_capability"
)

// Location fit levels. Unknown preferences are neutral rather than a
// mismatch, since absence of a preference is not evidence against a pair.
const (
	locationExact    = 1.0
	locationRelated  = 0.7
	locationNeutral  = 0.5
	locationMismatch = 0.3
)

// Config tunes the attendee-level metrics.
type Config struct {
	// ScanHorizon bounds how far back a badge scan still counts.
	ScanHorizon time.Duration
	// MaxScanBoost scales the recency metric at elapsed time zero.
	MaxScanBoost float64
	// RelatedLocations maps a normalized location to locations treated
	// as compatible but not identical.
	RelatedLocations map[string][]string
}

// DefaultConfig returns the tuning used when no overrides are supplied.
func DefaultConfig() Config {
	return Config{
		ScanHorizon:  48 * time.Hour,
		MaxScanBoost: 0.9,
		RelatedLocations: map[string][]string{
			"expo hall":    {"booth", "demo area"},
			"booth":        {"expo hall", "demo area"},
			"demo area":    {"expo hall", "booth"},
			"lounge":       {"cafe"},
			"cafe":         {"lounge"},
			"meeting room": {"quiet zone"},
			"quiet zone":   {"meeting room"},
		},
	}
}

// roleAffinity maps an attendee role to counterparty traits that raise
// the base role-intent signal. Stages are matched against company
// actors; kinds against anything.
var roleAffinity = map[string]map[string]float64{
	"investor": {
		"stage:idea":   1.25,
		"stage:seed":   1.25,
		"stage:growth": 1.1,
	},
	"founder": {
		"role:investor": 1.25,
		"kind:sponsor":  1.1,
	},
	"buyer": {
		"kind:company": 1.2,
		"kind:sponsor": 1.2,
	},
	"recruiter": {
		"stage:growth": 1.15,
		"stage:mature": 1.15,
	},
	"press": {
		"stage:growth": 1.1,
		"kind:sponsor": 1.1,
	},
}

// baseRoleIntent is the starting value before affinity boosts apply.
const baseRoleIntent = 0.5

// Engine derives attendee-level metrics for a pair of actors. The scan
// index is optional; without it the recency metric is simply absent.
type Engine struct {
	cfg    Config
	scans  *ScanIndex
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig overrides the default tuning.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithScanIndex supplies the badge-scan history.
func WithScanIndex(idx *ScanIndex) Option {
	return func(e *Engine) { e.scans = idx }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithNow overrides the clock used for scan recency.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an attendee metric engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		now:    time.Now,
		logger: slog.Default().With("component", "attendee"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetScanIndex replaces the badge-scan history, typically after new
// events are ingested.
func (e *Engine) SetScanIndex(idx *ScanIndex) {
	e.scans = idx
}

// Metrics computes the attendee-level metrics for a pair. When neither
// actor is an attendee only the pair-level scan recency can apply. When
// both are attendees, person-to-person metrics use a as the viewer.
// Zero and NaN values are dropped, matching the corpus metric contract.
func (e *Engine) Metrics(a, b *core.Actor) map[string]float64 {
	out := make(map[string]float64)

	if recency, ok := e.scanRecency(a.Id, b.Id); ok {
		put(out, MetricScanRecency, recency)
	}

	viewer, counterparty := a, b
	if viewer.Kind != core.ActorKindAttendee {
		viewer, counterparty = b, a
	}
	if viewer.Kind != core.ActorKindAttendee || viewer.Attendee == nil {
		return out
	}

	put(out, MetricRoleIntent, RoleIntent(viewer.Attendee.Roles, counterparty))
	put(out, MetricAvailabilityOverlap, AvailabilityOverlap(viewer, counterparty))
	put(out, MetricLocationFit, e.locationFit(viewer, counterparty))
	put(out, MetricBioSimilarity, signal.KeywordJaccard(bioText(viewer), bioText(counterparty)))
	put(out, MetricInterestCapability, InterestCapability(viewer.Attendee.Interests, counterparty.Capabilities))

	return out
}

// RoleIntent scores how well a counterparty matches the declared intent
// behind an attendee's roles. Each role starts from a neutral base and
// is raised by affinity boosts for the counterparty's kind and stage;
// the best-matching role wins. Result is clamped to [0, 1].
func RoleIntent(roles []string, counterparty *core.Actor) float64 {
	if len(roles) == 0 {
		return 0
	}
	traits := counterpartyTraits(counterparty)
	best := 0.0
	for _, role := range roles {
		value := baseRoleIntent
		boosts, ok := roleAffinity[strings.ToLower(strings.TrimSpace(role))]
		if ok {
			factor := 1.0
			for trait, boost := range boosts {
				if traits[trait] && boost > factor {
					factor = boost
				}
			}
			value *= factor
		}
		if value > best {
			best = value
		}
	}
	return math.Min(best, 1)
}

func counterpartyTraits(a *core.Actor) map[string]bool {
	traits := map[string]bool{
		"kind:" + strings.ToLower(a.Kind.String()): true,
	}
	if a.Stage != "" {
		traits["stage:"+strings.ToLower(a.Stage)] = true
	}
	if a.Attendee != nil {
		for _, role := range a.Attendee.Roles {
			traits["role:"+strings.ToLower(strings.TrimSpace(role))] = true
		}
	}
	return traits
}

// AvailabilityOverlap returns the fraction of the viewer's proposed
// slots the counterparty also lists. A viewer with no availability gets
// zero: they cannot meet anyone. A counterparty with unknown
// availability is neutral, not a mismatch.
func AvailabilityOverlap(viewer, counterparty *core.Actor) float64 {
	viewerSlots := availability(viewer)
	if len(viewerSlots) == 0 {
		return 0
	}
	otherSlots := availability(counterparty)
	if len(otherSlots) == 0 {
		return locationNeutral
	}
	other := make(map[string]bool, len(otherSlots))
	for _, slot := range otherSlots {
		other[normalizeSlot(slot)] = true
	}
	shared := 0
	for _, slot := range viewerSlots {
		if other[normalizeSlot(slot)] {
			shared++
		}
	}
	return float64(shared) / float64(len(viewerSlots))
}

// InterestCapability returns the fraction of the viewer's interests
// covered by the counterparty's capabilities, using the same literal
// substring match as the company-level need signal.
func InterestCapability(interests, capabilities []string) float64 {
	return signal.NeedCapability(interests, capabilities)
}

func (e *Engine) scanRecency(aID, bID string) (float64, bool) {
	last, ok := e.scans.LastScan(aID, bID)
	if !ok {
		return 0, false
	}
	elapsed := e.now().Sub(last)
	if elapsed < 0 || elapsed > e.cfg.ScanHorizon {
		return 0, false
	}
	decay := math.Exp(-elapsed.Seconds() / e.cfg.ScanHorizon.Seconds())
	return e.cfg.MaxScanBoost * decay, true
}

func (e *Engine) locationFit(viewer, counterparty *core.Actor) float64 {
	mine := preferredLocation(viewer)
	theirs := preferredLocation(counterparty)
	if mine == "" || theirs == "" {
		return locationNeutral
	}
	if mine == theirs {
		return locationExact
	}
	for _, related := range e.cfg.RelatedLocations[mine] {
		if normalizeSlot(related) == theirs {
			return locationRelated
		}
	}
	return locationMismatch
}

func availability(a *core.Actor) []string {
	if a.Attendee == nil {
		return nil
	}
	return a.Attendee.Availability
}

func preferredLocation(a *core.Actor) string {
	if a.Attendee == nil {
		return ""
	}
	return normalizeSlot(a.Attendee.PreferredLocation)
}

func bioText(a *core.Actor) string {
	parts := []string{a.Description, a.Pitch}
	if a.Attendee != nil {
		parts = append(parts, strings.Join(a.Attendee.Interests, " "))
	}
	return strings.Join(parts, " ")
}

func normalizeSlot(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func put(metrics map[string]float64, key string, value float64) {
	if value == 0 || math.IsNaN(value) {
		return
	}
	metrics[key] = value
}
