package algorithms

import (
	"errors"
	"fmt"
)

// Sentinel errors for scoring and ordering.
var (
	ErrEmptyGraph     = errors.New("graph has no nodes")
	ErrMissingScore   = errors.New("record has no score")
	ErrInvalidDamping = errors.New("damping factor must be in [0, 1)")
)

// EmptyGraphError is returned when centrality is requested for a graph with
// zero nodes. It is a caller precondition violation and never retried.
type EmptyGraphError struct {
	Op string
}

// Error implements the error interface.
func (e *EmptyGraphError) Error() string {
	return fmt.Sprintf("%s: %v (0 nodes)", e.Op, ErrEmptyGraph)
}

// Unwrap returns ErrEmptyGraph.
func (e *EmptyGraphError) Unwrap() error {
	return ErrEmptyGraph
}

// MissingScoreError is returned when a record's id has no entry in the score
// map. It means the graph and the record set were built from different inputs.
type MissingScoreError struct {
	ID      uint64 // first id without a score
	Records int    // records supplied
	Scores  int    // entries in the score map
}

// Error implements the error interface.
func (e *MissingScoreError) Error() string {
	return fmt.Sprintf("prioritize: record %d: %v (%d records, %d scores)", e.ID, ErrMissingScore, e.Records, e.Scores)
}

// Unwrap returns ErrMissingScore.
func (e *MissingScoreError) Unwrap() error {
	return ErrMissingScore
}

// IsEmptyGraph reports whether err is an empty-graph precondition failure.
func IsEmptyGraph(err error) bool {
	return errors.Is(err, ErrEmptyGraph)
}

// IsMissingScore reports whether err is a missing-score wiring failure.
func IsMissingScore(err error) bool {
	return errors.Is(err, ErrMissingScore)
}
