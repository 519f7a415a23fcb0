package taxonomy

import (
	"context"
	"sort"

	"github.com/confero/confero/signal"
	"github.com/confero/confero/storage"
)

// Distribution ranks a dimension's values by frequency.
type Distribution struct {
	Dimension Dimension
	// Head holds the most frequent values, best first.
	Head []ValueCount
	// TailCount is the number of values beyond the head.
	TailCount int
	// TailTotal is the summed frequency of the tail.
	TailTotal int
	// Stats summarize the value frequencies.
	Stats    FrequencyStats
	Coverage Coverage
}

// ValueCount is one ranked dimension value.
type ValueCount struct {
	Value string
	Count int
	// Share is the value's share of sampled actors, as a percentage.
	Share float64
}

// FrequencyStats summarize how value frequencies are spread.
type FrequencyStats struct {
	Distinct int
	Mean     float64
	Median   float64
	Min      int
	Max      int
}

// distributionHead bounds how many ranked values a report carries.
const distributionHead = 20

// Distribution builds the frequency ranking for a dimension.
func (a *Analyzer) Distribution(ctx context.Context, dim Dimension, filter storage.ActorFilter) (*Distribution, error) {
	actors, total, err := a.sample(ctx, filter)
	if err != nil {
		return nil, err
	}
	sets, cov, err := collect(actors, total, dim)
	if err != nil {
		return nil, err
	}

	freq := map[string]int{}
	for _, values := range sets {
		for _, v := range values {
			freq[v]++
		}
	}

	ranked := make([]ValueCount, 0, len(freq))
	for v, n := range freq {
		share := 0.0
		if len(sets) > 0 {
			share = float64(n) / float64(len(sets)) * 100
		}
		ranked = append(ranked, ValueCount{Value: v, Count: n, Share: share})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})

	dist := &Distribution{
		Dimension: dim,
		Stats:     frequencyStats(ranked),
		Coverage:  cov,
	}
	if len(ranked) > distributionHead {
		dist.Head = ranked[:distributionHead]
		dist.TailCount = len(ranked) - distributionHead
		for _, vc := range ranked[distributionHead:] {
			dist.TailTotal += vc.Count
		}
	} else {
		dist.Head = ranked
	}
	return dist, nil
}

func frequencyStats(ranked []ValueCount) FrequencyStats {
	stats := FrequencyStats{Distinct: len(ranked)}
	if len(ranked) == 0 {
		return stats
	}
	sum := 0
	stats.Min = ranked[len(ranked)-1].Count
	stats.Max = ranked[0].Count
	for _, vc := range ranked {
		sum += vc.Count
	}
	stats.Mean = float64(sum) / float64(len(ranked))
	mid := len(ranked) / 2
	if len(ranked)%2 == 1 {
		stats.Median = float64(ranked[mid].Count)
	} else {
		stats.Median = float64(ranked[mid-1].Count+ranked[mid].Count) / 2
	}
	return stats
}

// Correlation reports value pairs across two dimensions that co-occur
// on the same actors more than chance would suggest.
type Correlation struct {
	DimensionA Dimension
	DimensionB Dimension
	// Pairs hold correlated value pairs, strongest first.
	Pairs []CorrelatedPair
	// Strength is the mean Jaccard of the reported pairs.
	Strength float64
	Coverage Coverage
}

// CorrelatedPair links a value from each dimension.
type CorrelatedPair struct {
	ValueA string
	ValueB string
	// Jaccard is the overlap of the two values' actor sets.
	Jaccard float64
	Count   int
}

// minCorrelation is the reporting cutoff for pair strength.
const minCorrelation = 0.1

// Correlation cross-references two dimensions.
func (a *Analyzer) Correlation(ctx context.Context, dimA, dimB Dimension, filter storage.ActorFilter) (*Correlation, error) {
	actors, total, err := a.sample(ctx, filter)
	if err != nil {
		return nil, err
	}
	setsA, covA, err := collect(actors, total, dimA)
	if err != nil {
		return nil, err
	}
	setsB, _, err := collect(actors, total, dimB)
	if err != nil {
		return nil, err
	}

	actorsOfA := map[string][]string{}
	actorsOfB := map[string][]string{}
	for i := range actors {
		id := actors[i].Id
		for _, v := range setsA[i] {
			actorsOfA[v] = append(actorsOfA[v], id)
		}
		for _, v := range setsB[i] {
			actorsOfB[v] = append(actorsOfB[v], id)
		}
	}

	var pairs []CorrelatedPair
	for valueA, idsA := range actorsOfA {
		for valueB, idsB := range actorsOfB {
			j := signal.Jaccard(idsA, idsB)
			if j < minCorrelation {
				continue
			}
			pairs = append(pairs, CorrelatedPair{
				ValueA:  valueA,
				ValueB:  valueB,
				Jaccard: j,
				Count:   len(signal.Intersection(idsA, idsB)),
			})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Jaccard != pairs[j].Jaccard {
			return pairs[i].Jaccard > pairs[j].Jaccard
		}
		if pairs[i].ValueA != pairs[j].ValueA {
			return pairs[i].ValueA < pairs[j].ValueA
		}
		return pairs[i].ValueB < pairs[j].ValueB
	})

	strength := 0.0
	for _, p := range pairs {
		strength += p.Jaccard
	}
	if len(pairs) > 0 {
		strength /= float64(len(pairs))
	}

	return &Correlation{
		DimensionA: dimA,
		DimensionB: dimB,
		Pairs:      pairs,
		Strength:   strength,
		Coverage:   covA,
	}, nil
}

// DimensionRankingFor correlates a primary dimension against every
// other dimension and orders the reports by strength, answering "what
// does this axis move with" for one axis at a time.
func (a *Analyzer) DimensionRankingFor(ctx context.Context, primary Dimension, filter storage.ActorFilter) ([]*Correlation, error) {
	var reports []*Correlation
	for _, dim := range Dimensions {
		if dim == primary {
			continue
		}
		report, err := a.Correlation(ctx, primary, dim, filter)
		if err != nil {
			return nil, err
		}
		if len(report.Pairs) == 0 {
			continue
		}
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Strength > reports[j].Strength
	})
	return reports, nil
}

// DimensionRanking orders dimension pairs by correlation strength,
// pointing operators at the axes that actually structure the corpus.
func (a *Analyzer) DimensionRanking(ctx context.Context, filter storage.ActorFilter) ([]*Correlation, error) {
	var reports []*Correlation
	for i := 0; i < len(Dimensions); i++ {
		for j := i + 1; j < len(Dimensions); j++ {
			report, err := a.Correlation(ctx, Dimensions[i], Dimensions[j], filter)
			if err != nil {
				return nil, err
			}
			if len(report.Pairs) == 0 {
				continue
			}
			reports = append(reports, report)
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Strength > reports[j].Strength
	})
	return reports, nil
}
