package signal

import (
	"fmt"
	"sort"
)

// reasonTemplates render a human-readable explanation per metric key.
var reasonTemplates = map[string]string{
	MetricPlatformOverlap:     "Strong platform alignment (%.0f%% overlap)",
	MetricMarketOverlap:       "Active in overlapping markets (%.0f%% overlap)",
	MetricMarketSynergy:       "Markets with known synergy (%.0f%% strength)",
	MetricCategoryOverlap:     "Shared categories (%.0f%% overlap)",
	MetricStageFit:            "Complementary company stages (%.0f%% fit)",
	MetricReleaseProximity:    "Recent releases close together (%.0f%% proximity)",
	MetricTitleSimilarity:     "Very similar positioning (%.0f%% title similarity)",
	MetricTextRelevance:       "Related descriptions and topics (%.0f%% relevance)",
	MetricNeedCapability:      "Declared needs met by the other side (%.0f%% covered)",
	MetricEmbeddingSimilarity: "Semantically similar profiles (%.0f%% similarity)",
	"rating":                  "Comparable ratings (%.0f%% similarity)",
	"price":                   "Comparable pricing (%.0f%% similarity)",
	"cost":                    "Comparable cost structure (%.0f%% similarity)",
	"team_size":               "Similar team sizes (%.0f%% similarity)",
	"founded_year":            "Founded around the same time (%.0f%% similarity)",
}

// Reasons ranks metrics by raw value and renders templated explanations for
// the top n. Metrics without a template fall back to a generic line.
func Reasons(metrics map[string]float64, n int) []string {
	if n <= 0 || len(metrics) == 0 {
		return nil
	}

	type kv struct {
		key   string
		value float64
	}
	ranked := make([]kv, 0, len(metrics))
	for key, v := range metrics {
		ranked = append(ranked, kv{key, v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].value != ranked[j].value {
			return ranked[i].value > ranked[j].value
		}
		return ranked[i].key < ranked[j].key
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	reasons := make([]string, 0, n)
	for _, entry := range ranked[:n] {
		tmpl, ok := reasonTemplates[entry.key]
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s: %.0f%%", entry.key, entry.value*100))
			continue
		}
		reasons = append(reasons, fmt.Sprintf(tmpl, entry.value*100))
	}
	return reasons
}
