package signal

import (
	"log/slog"
	"math"
	"strings"

	"github.com/confero/confero/core"
)

// Config holds the tunable constants of the signal engine.
type Config struct {
	// DateHorizonDays is the decay horizon for date proximity.
	DateHorizonDays float64
	// Temperature divides z-score deltas in numeric similarity.
	Temperature float64
	// StageMatrix is the default stage-complementarity lookup table, used
	// when a weight profile carries no stage rules of its own.
	StageMatrix map[string]map[string]float64
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		DateHorizonDays: 365,
		Temperature:     1.0,
		StageMatrix:     DefaultStageMatrix(),
	}
}

// DefaultStageMatrix scores how well two company stages complement each
// other. Identical stages score moderately; adjacent stages score best for
// partner-style matching.
func DefaultStageMatrix() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"idea":   {"idea": 0.5, "seed": 0.7, "growth": 0.4, "mature": 0.3},
		"seed":   {"seed": 0.5, "growth": 0.8, "mature": 0.5},
		"growth": {"growth": 0.6, "mature": 0.8},
		"mature": {"mature": 0.6},
	}
}

type numericStats struct {
	mean float64
	std  float64
}

// Engine computes per-signal similarity between two corpus actors.
//
// Initialize must be called before Metrics and again whenever the corpus
// changes; there is no incremental update. The engine itself does not
// synchronize: a rebuild must not run concurrently with reads.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	index    *textIndex
	numeric  map[core.NumericField]numericStats
	revision uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		if cfg.DateHorizonDays <= 0 {
			cfg.DateHorizonDays = 365
		}
		if cfg.Temperature <= 0 {
			cfg.Temperature = 1.0
		}
		if cfg.StageMatrix == nil {
			cfg.StageMatrix = DefaultStageMatrix()
		}
		e.cfg = cfg
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewEngine creates a signal engine. Call Initialize before computing metrics.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:     DefaultConfig(),
		logger:  slog.Default().With("component", "signal"),
		numeric: make(map[core.NumericField]numericStats),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize rebuilds, wholesale, the text-relevance index and the
// per-numeric-field corpus statistics.
func (e *Engine) Initialize(actors []*core.Actor) {
	e.InitializeWithRevision(actors, 0)
}

// InitializeWithRevision is Initialize plus a corpus revision stamp, used by
// callers that track staleness against the actor repository.
func (e *Engine) InitializeWithRevision(actors []*core.Actor, revision uint64) {
	e.index = buildTextIndex(actors)
	e.numeric = make(map[core.NumericField]numericStats, len(core.NumericFields))

	for _, field := range core.NumericFields {
		var values []float64
		for _, actor := range actors {
			if v, ok := field.Value(actor); ok {
				values = append(values, v)
			}
		}
		e.numeric[field] = summarize(values)
	}
	e.revision = revision

	e.logger.Debug("signal engine initialized",
		"actors", len(actors), "documents", e.index.docCount, "revision", revision)
}

// Revision returns the corpus revision the engine was initialized against.
func (e *Engine) Revision() uint64 {
	return e.revision
}

// summarize computes mean and standard deviation, flooring std at 1 to avoid
// division by zero on degenerate corpora.
func summarize(values []float64) numericStats {
	if len(values) == 0 {
		return numericStats{mean: 0, std: 1}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(values)))
	if std < 1 {
		std = 1
	}
	return numericStats{mean: mean, std: std}
}

// zScore normalizes a raw value against the corpus statistics for the field.
func (e *Engine) zScore(field core.NumericField, v float64) float64 {
	stats, ok := e.numeric[field]
	if !ok {
		return 0
	}
	return (v - stats.mean) / stats.std
}

// Metrics returns the key→value similarity map for an actor pair, with zero
// and NaN entries removed, using the engine's default contextual tables.
func (e *Engine) Metrics(a, b *core.Actor) map[string]float64 {
	return e.MetricsWithRules(a, b, nil)
}

// MetricsWithRules computes metrics with a profile's context rules overlaid:
// platform boosts scale the platform overlap, the market-synergy matrix adds
// a market_synergy signal, and a profile stage matrix replaces the default.
func (e *Engine) MetricsWithRules(a, b *core.Actor, rules *core.ContextRules) map[string]float64 {
	metrics := make(map[string]float64, ExpectedMetricBaseline)

	// Set overlaps. Jaccard(∅,∅)=1 carries no information for scoring, so
	// signals from two empty lists are recorded as absent rather than as a
	// perfect score.
	putIfMeaningful(metrics, MetricPlatformOverlap, a.Platforms, b.Platforms)
	putIfMeaningful(metrics, MetricMarketOverlap, a.Markets, b.Markets)
	putIfMeaningful(metrics, MetricCategoryOverlap, a.Categories, b.Categories)

	if rules != nil && len(rules.PlatformBoosts) > 0 {
		if v, ok := metrics[MetricPlatformOverlap]; ok {
			boost := 1.0
			for _, shared := range Intersection(a.Platforms, b.Platforms) {
				if f, ok := rules.PlatformBoosts[shared]; ok && f > boost {
					boost = f
				}
			}
			metrics[MetricPlatformOverlap] = math.Min(1, v*boost)
		}
	}

	if rules != nil && len(rules.MarketSynergy) > 0 {
		metrics[MetricMarketSynergy] = marketSynergy(rules.MarketSynergy, a.Markets, b.Markets)
	}

	// Stage complementarity
	stageMatrix := e.cfg.StageMatrix
	if rules != nil && len(rules.StageMatrix) > 0 {
		stageMatrix = rules.StageMatrix
	}
	metrics[MetricStageFit] = stageLookup(stageMatrix, a.Stage, b.Stage)

	// Dates
	metrics[MetricReleaseProximity] = DateProximity(a.ReleasedAt, b.ReleasedAt, e.cfg.DateHorizonDays)

	// Numeric z-exp similarity, only when both sides carry the field
	for _, field := range core.NumericFields {
		vA, okA := field.Value(a)
		vB, okB := field.Value(b)
		if !okA || !okB {
			continue
		}
		metrics[field.Key()] = ZExpSimilarity(e.zScore(field, vA), e.zScore(field, vB), e.cfg.Temperature)
	}

	// Text
	metrics[MetricTitleSimilarity] = StringSimilarity(a.Title, b.Title)
	if e.index != nil {
		metrics[MetricTextRelevance] = e.index.relevance(a.Id, b.Id)
	}

	// Bipartite need/capability, bidirectional
	metrics[MetricNeedCapability] = NeedCapabilityBidirectional(a.Needs, a.Capabilities, b.Needs, b.Capabilities)

	// Embeddings, when both present
	metrics[MetricEmbeddingSimilarity] = CosineSimilarity(a.Vector, b.Vector)

	dropEmpty(metrics)
	return metrics
}

// putIfMeaningful records a Jaccard overlap only when at least one side has
// values; the both-empty case is no evidence, not a perfect match.
func putIfMeaningful(metrics map[string]float64, key string, a, b []string) {
	if len(a) == 0 && len(b) == 0 {
		return
	}
	metrics[key] = Jaccard(a, b)
}

func marketSynergy(synergy map[string]map[string]float64, marketsA, marketsB []string) float64 {
	best := 0.0
	for _, ma := range marketsA {
		a := strings.ToLower(strings.TrimSpace(ma))
		for _, mb := range marketsB {
			b := strings.ToLower(strings.TrimSpace(mb))
			if row, ok := synergy[a]; ok {
				if v, ok := row[b]; ok && v > best {
					best = v
				}
			}
			if row, ok := synergy[b]; ok {
				if v, ok := row[a]; ok && v > best {
					best = v
				}
			}
		}
	}
	return best
}

// dropEmpty removes zero and NaN entries: no signal, not a bad signal.
func dropEmpty(metrics map[string]float64) {
	for key, v := range metrics {
		if v == 0 || math.IsNaN(v) {
			delete(metrics, key)
		}
	}
}
