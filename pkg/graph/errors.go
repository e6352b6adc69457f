package graph

import "fmt"

// BuildError reports a graph construction failure with the offending id and
// the size of the input.
type BuildError struct {
	ID    uint64
	Nodes int
	Cause error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build graph (%d records): node %d: %v", e.Nodes, e.ID, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}
