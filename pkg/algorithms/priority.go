package algorithms

import (
	"container/heap"

	"github.com/dd0wney/cluso-triage/pkg/patient"
)

// Ranked is a record with its centrality score and 1-based position in the
// priority order.
type Ranked struct {
	Record patient.Record
	Score  float64
	Rank   int
}

// priorityHeap is a max-heap on score. Equal scores are ordered by ascending
// record id so the drain order never depends on insertion order.
type priorityHeap []Ranked

func (h priorityHeap) Len() int { return len(h) }
func (h priorityHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	return h[i].Record.ID < h[j].Record.ID
}
func (h priorityHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *priorityHeap) Push(x any) {
	*h = append(*h, x.(Ranked))
}

func (h *priorityHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// PriorityQueue yields records most-critical-first. Pop is O(log N).
type PriorityQueue struct {
	h      priorityHeap
	popped int
}

// NewPriorityQueue pairs every record with its score. It fails with
// *MissingScoreError if any record id is absent from scores; a missing score
// is never treated as zero.
func NewPriorityQueue(records []patient.Record, scores ScoreMap) (*PriorityQueue, error) {
	h := make(priorityHeap, 0, len(records))
	for _, r := range records {
		score, ok := scores[r.ID]
		if !ok {
			return nil, &MissingScoreError{ID: r.ID, Records: len(records), Scores: len(scores)}
		}
		h = append(h, Ranked{Record: r, Score: score})
	}
	heap.Init(&h)
	return &PriorityQueue{h: h}, nil
}

// Len returns the number of records still queued.
func (pq *PriorityQueue) Len() int {
	return pq.h.Len()
}

// Pop removes and returns the current most-critical record.
func (pq *PriorityQueue) Pop() (Ranked, bool) {
	if pq.h.Len() == 0 {
		return Ranked{}, false
	}
	next := heap.Pop(&pq.h).(Ranked)
	pq.popped++
	next.Rank = pq.popped
	return next, true
}

// Drain empties the queue into a slice, highest score first. The result is a
// snapshot; the queue is empty afterwards.
func (pq *PriorityQueue) Drain() []Ranked {
	out := make([]Ranked, 0, pq.h.Len())
	for {
		next, ok := pq.Pop()
		if !ok {
			return out
		}
		out = append(out, next)
	}
}

// Prioritize orders records by descending score, ties by ascending id.
func Prioritize(records []patient.Record, scores ScoreMap) ([]Ranked, error) {
	pq, err := NewPriorityQueue(records, scores)
	if err != nil {
		return nil, err
	}
	return pq.Drain(), nil
}
