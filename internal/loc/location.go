package loc

import (
	"fmt"

	"talon/internal/il"
)

// Kind discriminates the three position variants a location can take.
type Kind uint8

const (
	// KindInstruction is a position at an instruction within a block.
	KindInstruction Kind = iota + 1
	// KindEdge is a position on an edge between two blocks.
	KindEdge
	// KindEmptyBlock is a position at a block holding no instructions.
	KindEmptyBlock
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindInstruction:
		return "instruction"
	case KindEdge:
		return "edge"
	case KindEmptyBlock:
		return "empty-block"
	default:
		return "unknown"
	}
}

// FunctionLocation names a position within a function independent of any
// function instance. Exactly one variant is active, selected by Kind;
// fields of the other variants stay zero. Values are comparable and
// serializable.
type FunctionLocation struct {
	Kind        Kind                `msgpack:"kind"`
	Block       il.BlockIndex       `msgpack:"block,omitempty"`
	Instruction il.InstructionIndex `msgpack:"instruction,omitempty"`
	Head        il.BlockIndex       `msgpack:"head,omitempty"`
	Tail        il.BlockIndex       `msgpack:"tail,omitempty"`
}

// InstructionLocation names the instruction with the given index inside
// the given block.
func InstructionLocation(block il.BlockIndex, instruction il.InstructionIndex) FunctionLocation {
	return FunctionLocation{Kind: KindInstruction, Block: block, Instruction: instruction}
}

// EdgeLocation names the edge between two blocks.
func EdgeLocation(head, tail il.BlockIndex) FunctionLocation {
	return FunctionLocation{Kind: KindEdge, Head: head, Tail: tail}
}

// EmptyBlockLocation names a block that holds no instructions.
func EmptyBlockLocation(block il.BlockIndex) FunctionLocation {
	return FunctionLocation{Kind: KindEmptyBlock, Block: block}
}

// Apply resolves the location inside a concrete function instance. The
// miss is silent: callers use Apply to probe whether a saved location
// still makes sense against this instance.
func (l FunctionLocation) Apply(f *il.Function) (RefFunctionLocation, bool) {
	if f == nil {
		return RefFunctionLocation{}, false
	}
	switch l.Kind {
	case KindInstruction:
		block := f.Block(l.Block)
		if block == nil {
			return RefFunctionLocation{}, false
		}
		instruction := block.Instruction(l.Instruction)
		if instruction == nil {
			return RefFunctionLocation{}, false
		}
		return RefInstruction(block, instruction), true
	case KindEdge:
		edge := f.Edge(l.Head, l.Tail)
		if edge == nil {
			return RefFunctionLocation{}, false
		}
		return RefEdge(edge), true
	case KindEmptyBlock:
		block := f.Block(l.Block)
		if block == nil {
			return RefFunctionLocation{}, false
		}
		return RefEmptyBlock(block), true
	default:
		return RefFunctionLocation{}, false
	}
}

// String returns a human-readable representation of the location.
func (l FunctionLocation) String() string {
	switch l.Kind {
	case KindInstruction:
		return fmt.Sprintf("bb%d/%d", l.Block, l.Instruction)
	case KindEdge:
		return fmt.Sprintf("bb%d->bb%d", l.Head, l.Tail)
	case KindEmptyBlock:
		return fmt.Sprintf("bb%d/<empty>", l.Block)
	default:
		return "<invalid>"
	}
}

// ProgramLocation names a position within a program independent of any
// program instance. The function index is only checked when the location
// is applied or migrated, never at construction.
type ProgramLocation struct {
	Function il.FunctionIndex `msgpack:"function"`
	Location FunctionLocation `msgpack:"location"`
}

// Apply resolves the location inside a concrete program instance, with the
// same silent-miss contract as FunctionLocation.Apply.
func (l ProgramLocation) Apply(p *il.Program) (RefProgramLocation, bool) {
	if p == nil {
		return RefProgramLocation{}, false
	}
	function := p.Function(l.Function)
	if function == nil {
		return RefProgramLocation{}, false
	}
	ref, ok := l.Location.Apply(function)
	if !ok {
		return RefProgramLocation{}, false
	}
	return NewRefProgramLocation(function, ref), true
}

// String returns a human-readable representation of the location.
func (l ProgramLocation) String() string {
	return fmt.Sprintf("fn%d %s", l.Function, l.Location)
}
