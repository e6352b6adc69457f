package algorithms

import (
	"container/heap"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/dd0wney/cluso-triage/pkg/graph"
)

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // probability of following an edge; triage uses 0.85
	MaxIterations int     // hard cap; hitting it is not an error
	Tolerance     float64 // L1 change between iterations that counts as converged
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// withDefaults fills zero-valued iteration settings.
func (o PageRankOptions) withDefaults() PageRankOptions {
	def := DefaultPageRankOptions()
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = def.Tolerance
	}
	return o
}

// ScoreMap maps node id to centrality. Values are non-negative and sum to 1.
type ScoreMap map[uint64]float64

// Sum returns the total mass of the distribution.
func (s ScoreMap) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// PageRankResult contains PageRank scores for all nodes
type PageRankResult struct {
	Scores     ScoreMap
	Iterations int     // iterations performed
	Converged  bool    // false when MaxIterations was reached first
	Delta      float64 // L1 change of the last iteration
}

// RankedNode represents a node with its rank
type RankedNode struct {
	NodeID uint64
	Score  float64
}

// PageRank computes a stationary distribution over g by power iteration.
//
// Edge weights are renormalised per source by its total outgoing weight.
// Mass held by dangling nodes (no out-edges) is spread uniformly over all
// nodes every iteration, as is the (1 - damping) restart mass, so the vector
// stays a distribution. The initial vector is uniform.
func PageRank(g *graph.SimilarityGraph, opts PageRankOptions) (*PageRankResult, error) {
	if g == nil || g.NodeCount() == 0 {
		return nil, &EmptyGraphError{Op: "pagerank"}
	}
	if !(opts.DampingFactor >= 0 && opts.DampingFactor < 1) {
		return nil, fmt.Errorf("pagerank: %w, got %v", ErrInvalidDamping, opts.DampingFactor)
	}
	opts = opts.withDefaults()

	ids := g.NodeIDs()
	n := len(ids)
	position := make(map[uint64]int, n)
	for i, id := range ids {
		position[id] = i
	}

	// Transition inputs per target: (source position, normalised weight).
	type inLink struct {
		from int
		p    float64
	}
	outWeight := make([]float64, n)
	for i, id := range ids {
		outWeight[i] = g.OutWeight(id)
	}
	incoming := make([][]inLink, n)
	for i, id := range ids {
		for _, e := range g.IncomingEdges(id) {
			from := position[e.FromNodeID]
			incoming[i] = append(incoming[i], inLink{from: from, p: e.Weight / outWeight[from]})
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)

	alpha := opts.DampingFactor
	result := &PageRankResult{}

	for result.Iterations < opts.MaxIterations {
		result.Iterations++

		dangling := 0.0
		for i, w := range outWeight {
			if w == 0 {
				dangling += scores[i]
			}
		}
		base := (1.0-alpha)/float64(n) + alpha*dangling/float64(n)

		for i := range next {
			rank := base
			for _, link := range incoming[i] {
				rank += alpha * scores[link.from] * link.p
			}
			next[i] = rank
		}

		result.Delta = floats.Distance(next, scores, 1)
		scores, next = next, scores

		if result.Delta < opts.Tolerance {
			result.Converged = true
			break
		}
	}

	// Remove floating-point drift so the output sums to 1.
	if sum := floats.Sum(scores); sum > 0 {
		floats.Scale(1/sum, scores)
	}

	result.Scores = make(ScoreMap, n)
	for i, id := range ids {
		result.Scores[id] = scores[i]
	}
	return result, nil
}

// rankedNodeHeap implements a min-heap for RankedNode by score, ties ordered
// so that the larger id sits nearer the root and is evicted first.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].NodeID > h[j].NodeID
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopNodes returns the n highest-scoring nodes, best first, with ties broken
// by ascending id. Time O(len(s) log n).
func (s ScoreMap) TopNodes(n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	for nodeID, score := range s {
		rn := RankedNode{NodeID: nodeID, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if beats(rn, h[0]) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}

// beats reports whether a outranks b.
func beats(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.NodeID < b.NodeID
}
