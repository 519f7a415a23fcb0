package signal

import (
	"math"
	"strings"
	"testing"

	"github.com/confero/confero/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() []*core.Actor {
	return []*core.Actor{
		{
			Id: "a1", Kind: core.ActorKindCompany, Name: "Acme",
			Title:       "Digital publishing platform",
			Description: "Acme builds tools for digital publishing workflows",
			Platforms:   []string{"web", "mobile"},
			Markets:     []string{"publishing"},
			Rating:      4.0, TeamSize: 20,
		},
		{
			Id: "b2", Kind: core.ActorKindCompany, Name: "Bookify",
			Title:       "Publishing services marketplace",
			Description: "Marketplace connecting publishers with service providers",
			Platforms:   []string{"web"},
			Markets:     []string{"publishing", "media"},
			Rating:      4.5, TeamSize: 35,
		},
		{
			Id: "c3", Kind: core.ActorKindCompany, Name: "Cargomatic",
			Title:       "Freight logistics optimizer",
			Description: "Routing and capacity planning for freight carriers",
			Platforms:   []string{"api"},
			Markets:     []string{"logistics"},
			Rating:      3.0, TeamSize: 200,
		},
	}
}

func TestMetricsNeverZeroOrNaN(t *testing.T) {
	engine := NewEngine()
	corpus := testCorpus()
	engine.Initialize(corpus)

	for i := range corpus {
		for j := i + 1; j < len(corpus); j++ {
			metrics := engine.Metrics(corpus[i], corpus[j])
			for key, v := range metrics {
				assert.False(t, v == 0, "metric %s is zero for %s/%s", key, corpus[i].Id, corpus[j].Id)
				assert.False(t, math.IsNaN(v), "metric %s is NaN", key)
				assert.LessOrEqual(t, v, 1.0, "metric %s above 1", key)
			}
		}
	}
}

func TestMetricsSymmetric(t *testing.T) {
	engine := NewEngine()
	corpus := testCorpus()
	engine.Initialize(corpus)

	ab := engine.Metrics(corpus[0], corpus[1])
	ba := engine.Metrics(corpus[1], corpus[0])
	assert.Equal(t, ab, ba)
}

func TestTextRelevanceBitIdentical(t *testing.T) {
	engine := NewEngine()
	corpus := testCorpus()
	engine.Initialize(corpus)

	// Term accumulation runs in sorted vocabulary order, so the float
	// result cannot drift with argument order or map iteration. Repeat to
	// shake out any order-dependent summation.
	want := engine.Metrics(corpus[0], corpus[1])[MetricTextRelevance]
	for i := 0; i < 50; i++ {
		assert.Equal(t, want, engine.Metrics(corpus[0], corpus[1])[MetricTextRelevance])
		assert.Equal(t, want, engine.Metrics(corpus[1], corpus[0])[MetricTextRelevance])
	}
}

func TestPlatformOverlapScenario(t *testing.T) {
	// Two actors sharing all platform tags, nothing else populated
	a := &core.Actor{Id: "p1", Kind: core.ActorKindCompany, Name: "P1", Platforms: []string{"web", "mobile"}}
	b := &core.Actor{Id: "p2", Kind: core.ActorKindCompany, Name: "P2", Platforms: []string{"mobile", "web"}}

	engine := NewEngine()
	engine.Initialize([]*core.Actor{a, b})

	metrics := engine.Metrics(a, b)
	require.Contains(t, metrics, MetricPlatformOverlap)
	assert.Equal(t, 1.0, metrics[MetricPlatformOverlap])

	reasons := Reasons(metrics, 3)
	require.NotEmpty(t, reasons)
	found := false
	for _, reason := range reasons {
		if strings.Contains(strings.ToLower(reason), "platform") {
			found = true
		}
	}
	assert.True(t, found, "reasons should mention platform alignment: %v", reasons)
}

func TestBipartiteScenario(t *testing.T) {
	a := &core.Actor{Id: "n1", Kind: core.ActorKindCompany, Name: "N1", Needs: []string{"Publishing Services"}}
	b := &core.Actor{Id: "n2", Kind: core.ActorKindCompany, Name: "N2", Capabilities: []string{"Publishing Services", "Marketing"}}

	engine := NewEngine()
	engine.Initialize([]*core.Actor{a, b})

	metrics := engine.Metrics(a, b)
	require.Contains(t, metrics, MetricNeedCapability)
	assert.InDelta(t, 1.0, metrics[MetricNeedCapability], 1e-9)
}

func TestTextRelevance(t *testing.T) {
	engine := NewEngine()
	corpus := testCorpus()
	engine.Initialize(corpus)

	metrics01 := engine.Metrics(corpus[0], corpus[1])
	metrics02 := engine.Metrics(corpus[0], corpus[2])

	// Two publishing companies read as more textually related than a
	// publishing company and a logistics company.
	require.Contains(t, metrics01, MetricTextRelevance)
	rel02 := metrics02[MetricTextRelevance] // may be absent entirely
	assert.Greater(t, metrics01[MetricTextRelevance], rel02)
}

func TestTextRelevanceTinyCorpus(t *testing.T) {
	a := &core.Actor{Id: "solo", Kind: core.ActorKindCompany, Name: "Solo", Description: "only document"}
	engine := NewEngine()
	engine.Initialize([]*core.Actor{a})

	// Corpus of fewer than two documents: relevance undefined, treated as 0
	// and therefore dropped.
	metrics := engine.Metrics(a, a)
	assert.NotContains(t, metrics, MetricTextRelevance)
}

func TestNumericZExpUsesCorpusStats(t *testing.T) {
	engine := NewEngine()
	corpus := testCorpus()
	engine.Initialize(corpus)

	// Acme (20) and Bookify (35) are much closer in team size than Acme and
	// Cargomatic (200).
	closer := engine.Metrics(corpus[0], corpus[1])["team_size"]
	farther := engine.Metrics(corpus[0], corpus[2])["team_size"]
	assert.Greater(t, closer, farther)

	// Missing on one side: no signal
	noTeam := &core.Actor{Id: "x", Kind: core.ActorKindCompany, Name: "X", Rating: 2}
	metrics := engine.Metrics(corpus[0], noTeam)
	assert.NotContains(t, metrics, "team_size")
}

func TestContextRules(t *testing.T) {
	engine := NewEngine()
	a := &core.Actor{Id: "a", Kind: core.ActorKindCompany, Name: "A", Platforms: []string{"web"}, Markets: []string{"fintech"}}
	b := &core.Actor{Id: "b", Kind: core.ActorKindCompany, Name: "B", Platforms: []string{"web", "mobile"}, Markets: []string{"banking"}}
	engine.Initialize([]*core.Actor{a, b})

	rules := &core.ContextRules{
		PlatformBoosts: map[string]float64{"web": 1.5},
		MarketSynergy:  map[string]map[string]float64{"fintech": {"banking": 0.9}},
	}

	plain := engine.Metrics(a, b)
	boosted := engine.MetricsWithRules(a, b, rules)

	assert.Greater(t, boosted[MetricPlatformOverlap], plain[MetricPlatformOverlap])
	assert.LessOrEqual(t, boosted[MetricPlatformOverlap], 1.0)
	assert.Equal(t, 0.9, boosted[MetricMarketSynergy])
	assert.NotContains(t, plain, MetricMarketSynergy)
}

func TestReasonsTopN(t *testing.T) {
	metrics := map[string]float64{
		MetricPlatformOverlap: 0.9,
		MetricMarketOverlap:   0.5,
		MetricNeedCapability:  0.7,
		"rating":              0.6,
	}
	reasons := Reasons(metrics, 2)
	require.Len(t, reasons, 2)
	assert.Contains(t, strings.ToLower(reasons[0]), "platform")

	assert.Nil(t, Reasons(metrics, 0))
	assert.Len(t, Reasons(metrics, 10), 4)
}

func TestRevisionStamp(t *testing.T) {
	engine := NewEngine()
	engine.InitializeWithRevision(testCorpus(), 7)
	assert.Equal(t, uint64(7), engine.Revision())
}
