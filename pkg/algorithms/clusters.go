package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-triage/pkg/graph"
)

// Cluster is a group of patients connected through similarity edges.
type Cluster struct {
	ID       int
	Patients []uint64
	Size     int
	Density  float64 // directed edges inside the cluster over Size*(Size-1)
}

// ClusterResult partitions a similarity graph into clusters.
type ClusterResult struct {
	Clusters       []*Cluster
	PatientCluster map[uint64]int // patient id -> cluster id
}

// SimilarityClusters finds the connected components of g, treating edges as
// undirected. Clusters are numbered in order of their first patient in g.
func SimilarityClusters(g *graph.SimilarityGraph) *ClusterResult {
	visited := make(map[uint64]bool, g.NodeCount())
	result := &ClusterResult{
		Clusters:       make([]*Cluster, 0),
		PatientCluster: make(map[uint64]int, g.NodeCount()),
	}

	for _, start := range g.NodeIDs() {
		if visited[start] {
			continue
		}

		cluster := &Cluster{ID: len(result.Clusters)}
		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			id := queue.Remove(queue.Front()).(uint64)
			cluster.Patients = append(cluster.Patients, id)
			result.PatientCluster[id] = cluster.ID

			for _, e := range g.OutgoingEdges(id) {
				if !visited[e.ToNodeID] {
					visited[e.ToNodeID] = true
					queue.PushBack(e.ToNodeID)
				}
			}
			for _, e := range g.IncomingEdges(id) {
				if !visited[e.FromNodeID] {
					visited[e.FromNodeID] = true
					queue.PushBack(e.FromNodeID)
				}
			}
		}

		cluster.Size = len(cluster.Patients)
		cluster.Density = density(g, cluster.Patients)
		result.Clusters = append(result.Clusters, cluster)
	}

	return result
}

// Largest returns the biggest cluster, the earliest on ties, or nil for an
// empty graph.
func (r *ClusterResult) Largest() *Cluster {
	var largest *Cluster
	for _, c := range r.Clusters {
		if largest == nil || c.Size > largest.Size {
			largest = c
		}
	}
	return largest
}

func density(g *graph.SimilarityGraph, members []uint64) float64 {
	n := len(members)
	if n < 2 {
		return 0
	}
	// Edges never leave a component, so every out-edge is internal.
	edges := 0
	for _, id := range members {
		edges += len(g.OutgoingEdges(id))
	}
	return float64(edges) / float64(n*(n-1))
}
