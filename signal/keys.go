package signal

// Metric keys produced by the signal engine. Weight profiles reference these
// keys; unlisted keys default to weight 1 at aggregation time.
const (
	MetricPlatformOverlap     = "platform_overlap"
	MetricMarketOverlap       = "market_overlap"
	MetricMarketSynergy       = "market_synergy"
	MetricCategoryOverlap     = "category_overlap"
	MetricStageFit            = "stage_fit"
	MetricReleaseProximity    = "release_proximity"
	MetricTitleSimilarity     = "title_similarity"
	MetricTextRelevance       = "text_relevance"
	MetricNeedCapability      = "need_capability"
	MetricEmbeddingSimilarity = "embedding_similarity"
)

// Numeric z-exp metrics reuse the core.NumericField keys: "rating", "price",
// "cost", "team_size", "founded_year".

// ExpectedMetricBaseline is the metric-count denominator used in confidence
// calculations: roughly how many signals a fully-populated pair yields.
const ExpectedMetricBaseline = 15
