package signal

import (
	"math"
	"strings"
	"time"

	"github.com/xrash/smetrics"
)

// DateProximity is the exponential decay of the absolute day-delta between
// two dates over a horizon (in days). Returns 0 if either date is missing.
func DateProximity(a, b time.Time, horizonDays float64) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	if horizonDays <= 0 {
		horizonDays = 365
	}
	days := math.Abs(a.Sub(b).Hours()) / 24
	return math.Exp(-days / horizonDays)
}

// Jaccard is the case-insensitive set overlap of two lists.
// Defined as 1 when both lists are empty and 0 when exactly one is empty.
func Jaccard(a, b []string) float64 {
	setA := foldSet(a)
	setB := foldSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for v := range setA {
		if setB[v] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// Intersection returns the shared (case-folded) values of two lists.
func Intersection(a, b []string) []string {
	setB := foldSet(b)
	var shared []string
	seen := map[string]bool{}
	for _, v := range a {
		f := strings.ToLower(strings.TrimSpace(v))
		if f != "" && setB[f] && !seen[f] {
			shared = append(shared, f)
			seen[f] = true
		}
	}
	return shared
}

func foldSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}

// ZExpSimilarity is the exponential decay of the absolute difference of two
// corpus-normalized z-scores, divided by a temperature constant. Symmetric in
// its value arguments and strictly decreasing in |zA−zB|.
func ZExpSimilarity(zA, zB, temperature float64) float64 {
	if temperature <= 0 {
		temperature = 1
	}
	return math.Exp(-math.Abs(zA-zB) / temperature)
}

// StringSimilarity is 1 − normalized Levenshtein edit distance, case-folded.
// Returns 0 when either string is empty (no evidence).
func StringSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 1)
	longest := max(len(a), len(b))
	return 1 - float64(dist)/float64(longest)
}

// NeedCapability is the fraction of needs satisfied by capabilities.
// A need is satisfied when it matches a capability by case-insensitive
// substring in either direction. Returns 0 when needs are empty.
//
// Substring semantics are deliberate: they tolerate phrasing variants like
// "Publishing" vs "Publishing Services" at a known precision cost. A
// tokenized matcher would change scoring behavior and is left as a separate
// change if ever wanted.
func NeedCapability(needs, capabilities []string) float64 {
	if len(needs) == 0 || len(capabilities) == 0 {
		return 0
	}
	satisfied := 0
	for _, need := range needs {
		n := strings.ToLower(strings.TrimSpace(need))
		if n == "" {
			continue
		}
		for _, cap := range capabilities {
			c := strings.ToLower(strings.TrimSpace(cap))
			if c == "" {
				continue
			}
			if strings.Contains(c, n) || strings.Contains(n, c) {
				satisfied++
				break
			}
		}
	}
	return float64(satisfied) / float64(len(needs))
}

// NeedCapabilityBidirectional takes the max of A→B and B→A need satisfaction.
func NeedCapabilityBidirectional(needsA, capsA, needsB, capsB []string) float64 {
	return math.Max(NeedCapability(needsA, capsB), NeedCapability(needsB, capsA))
}

// CosineSimilarity of two embedding vectors, clamped to [0,1].
// Returns 0 when either vector is empty.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := min(len(a), len(b))
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(0, math.Min(1, cos))
}

// stageLookup resolves a stage pair in a complementarity matrix, trying both
// orders. Returns 0 when either stage is unknown to the table.
func stageLookup(matrix map[string]map[string]float64, stageA, stageB string) float64 {
	a := strings.ToLower(strings.TrimSpace(stageA))
	b := strings.ToLower(strings.TrimSpace(stageB))
	if a == "" || b == "" {
		return 0
	}
	if row, ok := matrix[a]; ok {
		if v, ok := row[b]; ok {
			return v
		}
	}
	if row, ok := matrix[b]; ok {
		if v, ok := row[a]; ok {
			return v
		}
	}
	return 0
}
