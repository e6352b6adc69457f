// Package graph builds the directed, weighted patient similarity graph that
// centrality scoring runs over. The graph is rebuilt from scratch for every
// run and never mutated afterwards.
package graph

import "errors"

// Sentinel errors for graph construction.
var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("edge references unknown node")
	ErrSelfLoop      = errors.New("self-loop not allowed")
	ErrInvalidWeight = errors.New("edge weight must be positive")
)

// Node is a graph vertex keyed by patient id. The clinical attributes the
// similarity was computed from are kept for reference.
type Node struct {
	ID              uint64
	Severity        int
	SymptomSeverity int
}

// Edge is a directed similarity link. Weight is in (EdgeThreshold, 1].
type Edge struct {
	FromNodeID uint64
	ToNodeID   uint64
	Weight     float64
}

// Statistics summarises a built graph.
type Statistics struct {
	NodeCount     int
	EdgeCount     int
	IsolatedNodes int // nodes with neither in- nor out-edges
	DanglingNodes int // nodes with no out-edges
}

// SimilarityGraph stores nodes in input order with per-node adjacency lists.
// Adjacency lists are ordered by target input position.
type SimilarityGraph struct {
	nodes    []Node
	index    map[uint64]int
	outgoing [][]Edge
	incoming [][]Edge
	edges    int
}

func newSimilarityGraph(nodes []Node) (*SimilarityGraph, error) {
	g := &SimilarityGraph{
		nodes:    nodes,
		index:    make(map[uint64]int, len(nodes)),
		outgoing: make([][]Edge, len(nodes)),
		incoming: make([][]Edge, len(nodes)),
	}
	for i, n := range nodes {
		if _, dup := g.index[n.ID]; dup {
			return nil, &BuildError{ID: n.ID, Nodes: len(nodes), Cause: ErrDuplicateNode}
		}
		g.index[n.ID] = i
	}
	return g, nil
}

// link installs row i's outgoing edges. Incoming lists are filled by finish.
func (g *SimilarityGraph) link(i int, out []Edge) {
	g.outgoing[i] = out
}

// finish derives incoming adjacency from the outgoing rows in a fixed order.
func (g *SimilarityGraph) finish() {
	g.edges = 0
	for i := range g.outgoing {
		for _, e := range g.outgoing[i] {
			to := g.index[e.ToNodeID]
			g.incoming[to] = append(g.incoming[to], e)
		}
		g.edges += len(g.outgoing[i])
	}
}

// NodeCount returns the number of nodes.
func (g *SimilarityGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of directed edges.
func (g *SimilarityGraph) EdgeCount() int { return g.edges }

// Nodes returns a copy of the nodes in input order.
func (g *SimilarityGraph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// NodeIDs returns node ids in input order.
func (g *SimilarityGraph) NodeIDs() []uint64 {
	ids := make([]uint64, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Node looks up a node by id.
func (g *SimilarityGraph) Node(id uint64) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// OutgoingEdges returns the edges leaving id. The slice must not be modified.
func (g *SimilarityGraph) OutgoingEdges(id uint64) []Edge {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.outgoing[i]
}

// IncomingEdges returns the edges entering id. The slice must not be modified.
func (g *SimilarityGraph) IncomingEdges(id uint64) []Edge {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.incoming[i]
}

// OutWeight returns the total weight leaving id.
func (g *SimilarityGraph) OutWeight(id uint64) float64 {
	total := 0.0
	for _, e := range g.OutgoingEdges(id) {
		total += e.Weight
	}
	return total
}

// Weight returns the weight of edge from->to and whether it exists.
func (g *SimilarityGraph) Weight(from, to uint64) (float64, bool) {
	for _, e := range g.OutgoingEdges(from) {
		if e.ToNodeID == to {
			return e.Weight, true
		}
	}
	return 0, false
}

// HasEdge reports whether edge from->to exists.
func (g *SimilarityGraph) HasEdge(from, to uint64) bool {
	_, ok := g.Weight(from, to)
	return ok
}

// Statistics returns node, edge, isolated and dangling counts.
func (g *SimilarityGraph) Statistics() Statistics {
	stats := Statistics{NodeCount: len(g.nodes), EdgeCount: g.edges}
	for i := range g.nodes {
		if len(g.outgoing[i]) == 0 {
			stats.DanglingNodes++
			if len(g.incoming[i]) == 0 {
				stats.IsolatedNodes++
			}
		}
	}
	return stats
}
