package loc

import (
	"errors"
	"fmt"

	"talon/internal/il"
)

// ErrMigrate is wrapped by every migration failure, so callers can match
// the class with errors.Is while the message names the missing entity.
var ErrMigrate = errors.New("location does not resolve in target program")

// Migrate re-resolves this location against a different program instance,
// assuming the two instances are structurally correspondent: the same
// function, block, instruction, and edge indices denote the same logical
// entities. Identity is by index only; there is no content-based fallback.
//
// Unlike Apply, migration fails loudly. A silently lost position is a
// correctness bug in the passes that track locations across program
// snapshots, so every failure names the entity that did not resolve.
func (l RefProgramLocation) Migrate(target *il.Program) (RefProgramLocation, error) {
	if target == nil {
		return RefProgramLocation{}, fmt.Errorf("loc: migrate: nil target program: %w", ErrMigrate)
	}
	function := target.Function(l.function.Index())
	if function == nil {
		return RefProgramLocation{}, fmt.Errorf("loc: migrate: could not find function %d: %w",
			l.function.Index(), ErrMigrate)
	}
	switch l.location.kind {
	case KindInstruction:
		block := function.Block(l.location.block.Index())
		if block == nil {
			return RefProgramLocation{}, fmt.Errorf("loc: migrate: could not find block %d: %w",
				l.location.block.Index(), ErrMigrate)
		}
		instruction := block.Instruction(l.location.instruction.Index())
		if instruction == nil {
			return RefProgramLocation{}, fmt.Errorf("loc: migrate: could not find instruction %d: %w",
				l.location.instruction.Index(), ErrMigrate)
		}
		return NewRefProgramLocation(function, RefInstruction(block, instruction)), nil
	case KindEdge:
		edge := function.Edge(l.location.edge.Head(), l.location.edge.Tail())
		if edge == nil {
			return RefProgramLocation{}, fmt.Errorf("loc: migrate: could not find edge %d,%d: %w",
				l.location.edge.Head(), l.location.edge.Tail(), ErrMigrate)
		}
		return NewRefProgramLocation(function, RefEdge(edge)), nil
	case KindEmptyBlock:
		block := function.Block(l.location.block.Index())
		if block == nil {
			return RefProgramLocation{}, fmt.Errorf("loc: migrate: could not find empty block %d: %w",
				l.location.block.Index(), ErrMigrate)
		}
		return NewRefProgramLocation(function, RefEmptyBlock(block)), nil
	default:
		return RefProgramLocation{}, fmt.Errorf("loc: migrate: invalid location kind %d: %w",
			l.location.kind, ErrMigrate)
	}
}
