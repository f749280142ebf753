package mesh

import "fmt"

// TopologyError reports connectivity the mesh cannot represent: unknown cell
// types, node counts that do not match a type, indices out of range, faces
// shared by more than two cells and degenerate geometry.
type TopologyError struct {
	Entity string // "cell", "face", "node" or "marker"
	Index  int
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology error: %s %d: %s", e.Entity, e.Index, e.Reason)
}

// PreconditionError reports a build step called out of sequence
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %s", e.Op, e.Reason)
}

// DimensionMismatchError reports data whose dimensionality disagrees with
// the dimension the mesh was constructed with.
type DimensionMismatchError struct {
	What string
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch for %s: want %d-D, got %d-D", e.What, e.Want, e.Got)
}

func topologyErrorf(entity string, index int, format string, args ...interface{}) *TopologyError {
	return &TopologyError{Entity: entity, Index: index, Reason: fmt.Sprintf(format, args...)}
}
