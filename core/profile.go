// Copyright 2026 Confero Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "time"

// DefaultMetricWeight is the weight applied to a computed metric that has no
// entry in a profile's weight map. An un-weighted signal still counts; it is
// never silently excluded.
const DefaultMetricWeight = 1.0

// Normalization controls how metric values are shaped before aggregation.
type Normalization struct {
	Method      string
	Temperature float64
}

// Thresholds filter match results.
type Thresholds struct {
	// MinScore is the minimum overall score, in [0,1].
	MinScore float64
	// MinConfidence is the minimum data-completeness confidence, in [0,1].
	MinConfidence float64
	// MaxResults caps the number of returned matches.
	MaxResults int
}

// ContextRules hold contextual scoring adjustments.
type ContextRules struct {
	// PlatformBoosts multiplies the platform overlap metric per platform.
	PlatformBoosts map[string]float64
	// MarketSynergy scores ordered market pairs.
	MarketSynergy map[string]map[string]float64
	// StageMatrix scores stage complementarity between two actors.
	StageMatrix map[string]map[string]float64
}

// WeightProfile is a named scoring configuration: per-metric weights,
// thresholds, and contextual adjustment rules, owned by a persona.
type WeightProfile struct {
	Id          string
	Name        string
	Description string
	Persona     string

	// Weights maps metric key to weight in [0,100]. Unlisted keys default
	// to DefaultMetricWeight.
	Weights map[string]float64

	Normalization Normalization
	Thresholds    Thresholds
	Rules         ContextRules

	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Weight returns the configured weight for a metric key, or
// DefaultMetricWeight when the key is unlisted.
func (p *WeightProfile) Weight(metric string) float64 {
	if w, ok := p.Weights[metric]; ok {
		return w
	}
	return DefaultMetricWeight
}

// Clone returns a deep copy of the profile.
func (p *WeightProfile) Clone() *WeightProfile {
	cp := *p
	cp.Weights = make(map[string]float64, len(p.Weights))
	for k, v := range p.Weights {
		cp.Weights[k] = v
	}
	cp.Rules = ContextRules{
		PlatformBoosts: copyFloatMap(p.Rules.PlatformBoosts),
		MarketSynergy:  copyNestedMap(p.Rules.MarketSynergy),
		StageMatrix:    copyNestedMap(p.Rules.StageMatrix),
	}
	return &cp
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyNestedMap(m map[string]map[string]float64) map[string]map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]float64, len(m))
	for k, v := range m {
		out[k] = copyFloatMap(v)
	}
	return out
}

// Contribution records one metric's share of a match score.
type Contribution struct {
	Metric   string
	Value    float64
	Weight   float64
	Weighted float64
}

// Match is a scored, explained pairwise relationship between two actors.
// Matches are derived data, regenerable from actors plus a weight profile.
type Match struct {
	// Id is the two actor ids sorted and joined; A<->B is stored once.
	Id     string
	ActorA string
	ActorB string

	Score float64
	// Contributions are sorted descending by weighted magnitude.
	Contributions []Contribution
	Reasons       []string
	// Confidence measures data completeness, not match quality.
	Confidence  float64
	Profile     string
	GeneratedAt time.Time
}

// MatchID returns the canonical order-independent match id for two actors.
func MatchID(a, b string) string {
	return PairKey(a, b)
}
