package loc

import (
	"fmt"

	"talon/internal/il"
)

// AdvanceForward computes the structural successors of this location
// within its program instance: zero, one, or many locations in the
// graph's enumeration order. It never follows where a branch actually
// transfers control.
//
// From an instruction, the successor is the next instruction of the same
// block, or one edge location per out-edge once the block ends. From an
// edge, the successor is the tail block's first instruction, or the tail
// block itself as an empty-block location. From an empty block, one edge
// location per out-edge. An empty result means the location is a program
// exit point.
//
// An error reports a structural inconsistency in the underlying graph
// (the location names objects the graph does not actually contain); it is
// a bug in whatever built the graph, not a recoverable condition.
func (l RefProgramLocation) AdvanceForward() ([]RefProgramLocation, error) {
	switch l.location.kind {
	case KindInstruction:
		return l.advanceInstruction(l.location.block, l.location.instruction)
	case KindEdge:
		return l.advanceEdge(l.location.edge)
	case KindEmptyBlock:
		return l.advanceEmptyBlock(l.location.block)
	default:
		return nil, fmt.Errorf("loc: cannot advance location of kind %d", l.location.kind)
	}
}

func (l RefProgramLocation) advanceInstruction(block *il.Block, instruction *il.Instruction) ([]RefProgramLocation, error) {
	instructions := block.Instructions()
	for i := range instructions {
		if instructions[i].Index() != instruction.Index() {
			continue
		}
		// Is there another instruction in this block?
		if i+1 < len(instructions) {
			next := RefInstruction(block, instructions[i+1])
			return []RefProgramLocation{NewRefProgramLocation(l.function, next)}, nil
		}
		// Block ended; fan out over the out-edges.
		return l.edgesOut(block)
	}
	return nil, fmt.Errorf("loc: could not find instruction %d in block %d in function %d",
		instruction.Index(), block.Index(), l.function.Index())
}

func (l RefProgramLocation) advanceEdge(edge *il.Edge) ([]RefProgramLocation, error) {
	block := l.function.Block(edge.Tail())
	if block == nil {
		return nil, fmt.Errorf("loc: could not find block %d in function %d",
			edge.Tail(), l.function.Index())
	}
	instructions := block.Instructions()
	if len(instructions) == 0 {
		return []RefProgramLocation{NewRefProgramLocation(l.function, RefEmptyBlock(block))}, nil
	}
	return []RefProgramLocation{NewRefProgramLocation(l.function, RefInstruction(block, instructions[0]))}, nil
}

func (l RefProgramLocation) advanceEmptyBlock(block *il.Block) ([]RefProgramLocation, error) {
	return l.edgesOut(block)
}

func (l RefProgramLocation) edgesOut(block *il.Block) ([]RefProgramLocation, error) {
	edges, ok := l.function.CFG().EdgesOut(block.Index())
	if !ok {
		return nil, fmt.Errorf("loc: could not find block %d in function %d",
			block.Index(), l.function.Index())
	}
	locations := make([]RefProgramLocation, 0, len(edges))
	for _, edge := range edges {
		locations = append(locations, NewRefProgramLocation(l.function, RefEdge(edge)))
	}
	return locations, nil
}
