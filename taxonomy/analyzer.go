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

// Package taxonomy analyzes the categorical dimensions of the corpus:
// co-occurrence heatmaps, relationship networks, frequency
// distributions, and cross-dimension correlations. Every report carries
// coverage metadata so consumers can judge how much data backs it.
package taxonomy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
)

// Dimension is a categorical axis of the corpus.
type Dimension string

const (
	DimensionPlatforms    Dimension = "platforms"
	DimensionMarkets      Dimension = "markets"
	DimensionCategories   Dimension = "categories"
	DimensionCapabilities Dimension = "capabilities"
	DimensionNeeds        Dimension = "needs"
	DimensionStages       Dimension = "stages"
	DimensionCountries    Dimension = "countries"
)

// Dimensions lists every analyzable axis.
var Dimensions = []Dimension{
	DimensionPlatforms, DimensionMarkets, DimensionCategories,
	DimensionCapabilities, DimensionNeeds, DimensionStages,
	DimensionCountries,
}

// ErrUnknownDimension is returned for a dimension outside Dimensions.
var ErrUnknownDimension = fmt.Errorf("unknown taxonomy dimension")

// DefaultSampleLimit caps how many actors an analysis reads.
const DefaultSampleLimit = 5000

// Coverage records how much of the corpus backed a report. A report
// over an empty or sparsely-populated dimension is still produced, just
// with low coverage, so consumers can tell "no signal" from "no data".
type Coverage struct {
	// CorpusSize is the total number of actors in the corpus.
	CorpusSize int
	// SampleSize is the number of actors the analysis read.
	SampleSize int
	// WithValues is the number of sampled actors carrying at least one
	// value on the analyzed dimension.
	WithValues int
	// Percent is WithValues over SampleSize, as a percentage.
	Percent float64
}

// Analyzer runs taxonomy reports over the actor corpus.
type Analyzer struct {
	actors      storage.ActorRepository
	sampleLimit int
	logger      *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSampleLimit overrides the analysis sample cap.
func WithSampleLimit(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.sampleLimit = n
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// NewAnalyzer creates a taxonomy analyzer.
func NewAnalyzer(actors storage.ActorRepository, opts ...Option) *Analyzer {
	a := &Analyzer{
		actors:      actors,
		sampleLimit: DefaultSampleLimit,
		logger:      slog.Default().With("component", "taxonomy"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// sample loads up to the sample cap of actors matching the filter,
// together with the full corpus size.
func (a *Analyzer) sample(ctx context.Context, filter storage.ActorFilter) ([]*core.Actor, int, error) {
	total, err := a.actors.CountActors(ctx)
	if err != nil {
		return nil, 0, err
	}
	filter.Limit = a.sampleLimit
	actors, err := a.actors.QueryActors(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return actors, total, nil
}

// dimensionValues extracts an actor's normalized values on a dimension.
func dimensionValues(actor *core.Actor, dim Dimension) ([]string, error) {
	var raw []string
	switch dim {
	case DimensionPlatforms:
		raw = actor.Platforms
	case DimensionMarkets:
		raw = actor.Markets
	case DimensionCategories:
		raw = actor.Categories
	case DimensionCapabilities:
		raw = actor.Capabilities
	case DimensionNeeds:
		raw = actor.Needs
	case DimensionStages:
		if actor.Stage != "" {
			raw = []string{actor.Stage}
		}
	case DimensionCountries:
		if actor.Country != "" {
			raw = []string{actor.Country}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// collect walks the sample once, returning per-actor value sets and the
// coverage for the dimension.
func collect(actors []*core.Actor, corpusSize int, dim Dimension) ([][]string, Coverage, error) {
	sets := make([][]string, 0, len(actors))
	withValues := 0
	for _, actor := range actors {
		values, err := dimensionValues(actor, dim)
		if err != nil {
			return nil, Coverage{}, err
		}
		if len(values) > 0 {
			withValues++
		}
		sets = append(sets, values)
	}
	cov := Coverage{
		CorpusSize: corpusSize,
		SampleSize: len(actors),
		WithValues: withValues,
	}
	if cov.SampleSize > 0 {
		cov.Percent = float64(withValues) / float64(cov.SampleSize) * 100
	}
	return sets, cov, nil
}
