package il

import "fmt"

// Edge is a directed connection between two blocks in a function's
// control-flow graph. The optional label carries branch-condition text for
// display; talon never interprets it.
type Edge struct {
	head  BlockIndex
	tail  BlockIndex
	label string
}

// Head returns the index of the block this edge leaves.
func (e *Edge) Head() BlockIndex { return e.head }

// Tail returns the index of the block this edge enters.
func (e *Edge) Tail() BlockIndex { return e.tail }

// Label returns the edge's display label, empty if none was set.
func (e *Edge) Label() string { return e.label }

// String returns a human-readable representation of the edge.
func (e *Edge) String() string {
	if e.label != "" {
		return fmt.Sprintf("bb%d -> bb%d [%s]", e.head, e.tail, e.label)
	}
	return fmt.Sprintf("bb%d -> bb%d", e.head, e.tail)
}
