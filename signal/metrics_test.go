package signal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	// Symmetry
	a := []string{"web", "mobile"}
	b := []string{"mobile", "iot"}
	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))

	// Both empty -> 1
	assert.Equal(t, 1.0, Jaccard(nil, nil))

	// Exactly one empty -> 0
	assert.Equal(t, 0.0, Jaccard(a, nil))
	assert.Equal(t, 0.0, Jaccard(nil, b))

	// Known overlap: {web,mobile} ∩ {mobile,iot} = 1, union = 3
	assert.InDelta(t, 1.0/3.0, Jaccard(a, b), 1e-9)

	// Case-insensitive
	assert.Equal(t, 1.0, Jaccard([]string{"Web"}, []string{"web"}))
}

func TestZExpSimilarity(t *testing.T) {
	// Symmetric in its two inputs
	assert.Equal(t, ZExpSimilarity(1.2, -0.4, 1), ZExpSimilarity(-0.4, 1.2, 1))

	// Identical z-scores give 1
	assert.Equal(t, 1.0, ZExpSimilarity(0.7, 0.7, 1))

	// Strictly decreasing in |zA−zB| for fixed temperature
	prev := 1.0
	for delta := 0.5; delta <= 4; delta += 0.5 {
		v := ZExpSimilarity(0, delta, 1)
		assert.Less(t, v, prev, "delta %g", delta)
		prev = v
	}

	// Bounded in (0,1]
	assert.Greater(t, ZExpSimilarity(0, 100, 1), 0.0)
}

func TestStringSimilarity(t *testing.T) {
	// Self-similarity = 1, symmetric
	assert.Equal(t, 1.0, StringSimilarity("Publishing Platform", "Publishing Platform"))
	assert.Equal(t, StringSimilarity("kitten", "sitting"), StringSimilarity("sitting", "kitten"))

	// kitten/sitting: distance 3 over length 7
	assert.InDelta(t, 1.0-3.0/7.0, StringSimilarity("kitten", "sitting"), 1e-9)

	// Case-folded
	assert.Equal(t, 1.0, StringSimilarity("Acme", "acme"))

	// No evidence when empty
	assert.Equal(t, 0.0, StringSimilarity("", "acme"))
}

func TestDateProximity(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Same day -> 1
	assert.InDelta(t, 1.0, DateProximity(base, base, 365), 1e-9)

	// Missing date -> 0
	assert.Equal(t, 0.0, DateProximity(base, time.Time{}, 365))
	assert.Equal(t, 0.0, DateProximity(time.Time{}, base, 365))

	// 365 days at horizon 365 -> e^-1
	later := base.AddDate(1, 0, 0)
	assert.InDelta(t, math.Exp(-1), DateProximity(base, later, 365), 1e-2)

	// Symmetric
	assert.Equal(t, DateProximity(base, later, 365), DateProximity(later, base, 365))
}

func TestNeedCapability(t *testing.T) {
	// Substring match either direction
	needs := []string{"Publishing Services"}
	caps := []string{"Publishing Services", "Marketing"}
	assert.InDelta(t, 1.0, NeedCapability(needs, caps), 1e-9)

	// Partial coverage
	needs = []string{"publishing", "logistics"}
	assert.InDelta(t, 0.5, NeedCapability(needs, caps), 1e-9)

	// Need text containing the capability also matches
	assert.InDelta(t, 1.0, NeedCapability([]string{"digital marketing help"}, []string{"marketing"}), 1e-9)

	// No needs or no capabilities -> 0
	assert.Equal(t, 0.0, NeedCapability(nil, caps))
	assert.Equal(t, 0.0, NeedCapability(needs, nil))
}

func TestNeedCapabilityBidirectional(t *testing.T) {
	// A's needs unmet, B's needs fully met by A -> max wins
	v := NeedCapabilityBidirectional(
		[]string{"funding"}, []string{"publishing"},
		[]string{"publishing"}, nil,
	)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, []float32{1}))
	// Negative cosine clamps to 0
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}))
}

func TestKeywordJaccard(t *testing.T) {
	a := "Building the future of publishing platforms"
	b := "We love publishing platforms"
	v := KeywordJaccard(a, b)
	assert.Greater(t, v, 0.0)
	assert.Equal(t, v, KeywordJaccard(b, a))

	assert.Equal(t, 0.0, KeywordJaccard("", b))
	// Stop words alone carry no keywords
	assert.Equal(t, 0.0, KeywordJaccard("the a an", b))
}

func TestStageLookup(t *testing.T) {
	matrix := DefaultStageMatrix()
	// Order-independent lookups
	assert.Equal(t, stageLookup(matrix, "seed", "growth"), stageLookup(matrix, "growth", "seed"))
	assert.Equal(t, 0.8, stageLookup(matrix, "seed", "growth"))
	assert.Equal(t, 0.0, stageLookup(matrix, "", "growth"))
	assert.Equal(t, 0.0, stageLookup(matrix, "unknown", "growth"))
}
