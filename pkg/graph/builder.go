package graph

import (
	"fmt"

	"github.com/dd0wney/cluso-triage/pkg/parallel"
	"github.com/dd0wney/cluso-triage/pkg/patient"
)

// EdgeThreshold is the hard cutoff: only pairs with weight strictly above it
// are linked.
const EdgeThreshold = 0.2

// Similarity returns 1 / (1 + |Δseverity| + |Δsymptom|). It is symmetric and
// lies in (0, 1], reaching 1 for identical attributes.
func Similarity(a, b patient.Record) float64 {
	severityDiff := abs(a.Severity - b.Severity)
	symptomDiff := abs(a.SymptomSeverity - b.SymptomSeverity)
	return 1.0 / float64(1+severityDiff+symptomDiff)
}

// Build links every ordered pair (i, j), i != j, whose similarity exceeds
// EdgeThreshold. Isolated records still become nodes. O(N²).
func Build(records []patient.Record) (*SimilarityGraph, error) {
	g, err := newSimilarityGraph(nodesFrom(records))
	if err != nil {
		return nil, err
	}
	for i := range records {
		g.link(i, row(records, i))
	}
	g.finish()
	return g, nil
}

// BuildParallel computes rows on a worker pool. The result is identical to
// Build for the same input.
func BuildParallel(records []patient.Record, workers int) (*SimilarityGraph, error) {
	if workers <= 1 {
		return Build(records)
	}

	g, err := newSimilarityGraph(nodesFrom(records))
	if err != nil {
		return nil, err
	}
	if err := parallel.ForEach(workers, len(records), func(i int) {
		g.link(i, row(records, i))
	}); err != nil {
		return nil, fmt.Errorf("build graph rows: %w", err)
	}
	g.finish()
	return g, nil
}

// row computes the outgoing edges of records[i] in target order.
func row(records []patient.Record, i int) []Edge {
	var out []Edge
	from := records[i]
	for j, to := range records {
		if i == j {
			continue
		}
		if w := Similarity(from, to); w > EdgeThreshold {
			out = append(out, Edge{FromNodeID: from.ID, ToNodeID: to.ID, Weight: w})
		}
	}
	return out
}

func nodesFrom(records []patient.Record) []Node {
	nodes := make([]Node, len(records))
	for i, r := range records {
		nodes[i] = Node{ID: r.ID, Severity: r.Severity, SymptomSeverity: r.SymptomSeverity}
	}
	return nodes
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FromEdges assembles a graph from explicit nodes and edges, for callers that
// already hold an adjacency list. Self-loops, unknown endpoints and
// non-positive weights are rejected.
func FromEdges(nodes []Node, edges []Edge) (*SimilarityGraph, error) {
	g, err := newSimilarityGraph(append([]Node(nil), nodes...))
	if err != nil {
		return nil, err
	}

	rows := make([][]Edge, len(nodes))
	for _, e := range edges {
		from, ok := g.index[e.FromNodeID]
		if !ok {
			return nil, &BuildError{ID: e.FromNodeID, Nodes: len(nodes), Cause: ErrUnknownNode}
		}
		if _, ok := g.index[e.ToNodeID]; !ok {
			return nil, &BuildError{ID: e.ToNodeID, Nodes: len(nodes), Cause: ErrUnknownNode}
		}
		if e.FromNodeID == e.ToNodeID {
			return nil, &BuildError{ID: e.FromNodeID, Nodes: len(nodes), Cause: ErrSelfLoop}
		}
		if !(e.Weight > 0) {
			return nil, &BuildError{ID: e.FromNodeID, Nodes: len(nodes), Cause: fmt.Errorf("%w: %v", ErrInvalidWeight, e.Weight)}
		}
		rows[from] = append(rows[from], e)
	}
	for i, r := range rows {
		g.link(i, r)
	}
	g.finish()
	return g, nil
}
