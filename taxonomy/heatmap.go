package taxonomy

import (
	"context"
	"sort"

	"github.com/confero/confero/storage"
)

// Heatmap is a symmetric co-occurrence matrix over one dimension's
// values: how often two values appear on the same actor.
type Heatmap struct {
	Dimension Dimension
	// Labels index the matrix rows and columns, most frequent first.
	Labels []string
	// Counts holds raw co-occurrence counts; Counts[i][i] is the value's
	// own frequency.
	Counts [][]int
	// Intensity normalizes counts to percent of the matrix maximum.
	Intensity [][]float64
	Coverage  Coverage
}

// maxHeatmapLabels bounds matrix size for dense dimensions.
const maxHeatmapLabels = 30

// Heatmap builds the co-occurrence matrix for a dimension.
func (a *Analyzer) Heatmap(ctx context.Context, dim Dimension, filter storage.ActorFilter) (*Heatmap, error) {
	actors, total, err := a.sample(ctx, filter)
	if err != nil {
		return nil, err
	}
	sets, cov, err := collect(actors, total, dim)
	if err != nil {
		return nil, err
	}

	labels := topLabels(sets, maxHeatmapLabels)
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	for _, values := range sets {
		for i := 0; i < len(values); i++ {
			vi, ok := index[values[i]]
			if !ok {
				continue
			}
			counts[vi][vi]++
			for j := i + 1; j < len(values); j++ {
				vj, ok := index[values[j]]
				if !ok {
					continue
				}
				counts[vi][vj]++
				counts[vj][vi]++
			}
		}
	}

	max := 0
	for _, row := range counts {
		for _, n := range row {
			if n > max {
				max = n
			}
		}
	}
	intensity := make([][]float64, len(labels))
	for i, row := range counts {
		intensity[i] = make([]float64, len(labels))
		if max == 0 {
			continue
		}
		for j, n := range row {
			intensity[i][j] = float64(n) / float64(max) * 100
		}
	}

	return &Heatmap{
		Dimension: dim,
		Labels:    labels,
		Counts:    counts,
		Intensity: intensity,
		Coverage:  cov,
	}, nil
}

// Network is a graph view of a dimension: values as nodes, significant
// co-occurrence as edges.
type Network struct {
	Dimension Dimension
	Nodes     []Node
	Edges     []Edge
	Coverage  Coverage
}

// Node is one dimension value.
type Node struct {
	Id    string
	Count int
	// Group identifies the node's connected component.
	Group int
}

// Edge is a significant co-occurrence between two values.
type Edge struct {
	Source string
	Target string
	Count  int
	// Weight is the count as a fraction of the sample size.
	Weight float64
}

// minEdgeShare is the minimum co-occurrence share of the sample for an
// edge to appear; rarer links are noise at conference scale.
const minEdgeShare = 0.02

// Network builds the relationship graph for a dimension.
func (a *Analyzer) Network(ctx context.Context, dim Dimension, filter storage.ActorFilter) (*Network, error) {
	actors, total, err := a.sample(ctx, filter)
	if err != nil {
		return nil, err
	}
	sets, cov, err := collect(actors, total, dim)
	if err != nil {
		return nil, err
	}

	freq := map[string]int{}
	pair := map[[2]string]int{}
	for _, values := range sets {
		for i, v := range values {
			freq[v]++
			for _, w := range values[i+1:] {
				key := [2]string{v, w}
				if w < v {
					key = [2]string{w, v}
				}
				pair[key]++
			}
		}
	}

	minCount := 1
	if n := int(minEdgeShare * float64(len(sets))); n > 1 {
		minCount = n
	}

	var edges []Edge
	for key, count := range pair {
		if count < minCount {
			continue
		}
		edges = append(edges, Edge{
			Source: key[0],
			Target: key[1],
			Count:  count,
			Weight: float64(count) / float64(len(sets)),
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Count != edges[j].Count {
			return edges[i].Count > edges[j].Count
		}
		return edges[i].Source < edges[j].Source
	})

	groups := components(freq, edges)
	nodes := make([]Node, 0, len(freq))
	for value, count := range freq {
		nodes = append(nodes, Node{Id: value, Count: count, Group: groups[value]})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Count != nodes[j].Count {
			return nodes[i].Count > nodes[j].Count
		}
		return nodes[i].Id < nodes[j].Id
	})

	return &Network{Dimension: dim, Nodes: nodes, Edges: edges, Coverage: cov}, nil
}

// components assigns connected-component groups via union-find.
func components(freq map[string]int, edges []Edge) map[string]int {
	parent := map[string]string{}
	var find func(string) string
	find = func(x string) string {
		if parent[x] == x {
			return x
		}
		parent[x] = find(parent[x])
		return parent[x]
	}
	for value := range freq {
		parent[value] = value
	}
	for _, e := range edges {
		parent[find(e.Source)] = find(e.Target)
	}

	groups := map[string]int{}
	next := 0
	roots := map[string]int{}
	// Assign group ids deterministically by value order.
	values := make([]string, 0, len(freq))
	for value := range freq {
		values = append(values, value)
	}
	sort.Strings(values)
	for _, value := range values {
		root := find(value)
		if _, ok := roots[root]; !ok {
			roots[root] = next
			next++
		}
		groups[value] = roots[root]
	}
	return groups
}

func topLabels(sets [][]string, limit int) []string {
	freq := map[string]int{}
	for _, values := range sets {
		for _, v := range values {
			freq[v]++
		}
	}
	labels := make([]string, 0, len(freq))
	for v := range freq {
		labels = append(labels, v)
	}
	sort.Slice(labels, func(i, j int) bool {
		if freq[labels[i]] != freq[labels[j]] {
			return freq[labels[i]] > freq[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if len(labels) > limit {
		labels = labels[:limit]
	}
	return labels
}
