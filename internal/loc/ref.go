package loc

import (
	"fmt"

	"talon/internal/il"
)

// RefFunctionLocation is a position resolved against one function
// instance, holding the named sub-objects directly. The fields are
// unexported: constructors keep the variant invariants (an instruction
// location's block structurally contains its instruction, an empty-block
// location's block has no instructions).
type RefFunctionLocation struct {
	kind        Kind
	block       *il.Block
	instruction *il.Instruction
	edge        *il.Edge
}

// RefInstruction names an instruction inside the block that contains it.
// The caller guarantees containment; no validation is performed.
func RefInstruction(block *il.Block, instruction *il.Instruction) RefFunctionLocation {
	return RefFunctionLocation{kind: KindInstruction, block: block, instruction: instruction}
}

// RefEdge names a position on an edge.
func RefEdge(edge *il.Edge) RefFunctionLocation {
	return RefFunctionLocation{kind: KindEdge, edge: edge}
}

// RefEmptyBlock names a block holding no instructions.
func RefEmptyBlock(block *il.Block) RefFunctionLocation {
	return RefFunctionLocation{kind: KindEmptyBlock, block: block}
}

// Kind returns the active variant.
func (l RefFunctionLocation) Kind() Kind { return l.kind }

// Block returns the referenced block for instruction and empty-block
// locations, nil otherwise.
func (l RefFunctionLocation) Block() *il.Block { return l.block }

// Instruction returns the referenced instruction for instruction
// locations, nil otherwise.
func (l RefFunctionLocation) Instruction() *il.Instruction { return l.instruction }

// Edge returns the referenced edge for edge locations, nil otherwise.
func (l RefFunctionLocation) Edge() *il.Edge { return l.edge }

// Owned lowers the location to its index-only form. Lowering is total:
// every referenced sub-object knows its own index.
func (l RefFunctionLocation) Owned() FunctionLocation {
	switch l.kind {
	case KindInstruction:
		return InstructionLocation(l.block.Index(), l.instruction.Index())
	case KindEdge:
		return EdgeLocation(l.edge.Head(), l.edge.Tail())
	case KindEmptyBlock:
		return EmptyBlockLocation(l.block.Index())
	default:
		return FunctionLocation{}
	}
}

// String returns a human-readable representation of the location.
func (l RefFunctionLocation) String() string { return l.Owned().String() }

// RefProgramLocation is a position resolved against one program instance:
// a function paired with a function-scoped location inside it. It never
// owns what it names; see the package documentation for the aliasing
// contract.
type RefProgramLocation struct {
	function *il.Function
	location RefFunctionLocation
}

// NewRefProgramLocation pairs a function with a function-scoped location.
// The caller guarantees the location's sub-objects belong to the function;
// no validation is performed.
func NewRefProgramLocation(function *il.Function, location RefFunctionLocation) RefProgramLocation {
	return RefProgramLocation{function: function, location: location}
}

// FromAddress scans the program in declared function, block, and
// instruction order and returns the location of the first instruction
// whose address equals the given one. The scan is linear; address lookup
// is not a hot path.
func FromAddress(program *il.Program, address uint64) (RefProgramLocation, bool) {
	if program == nil {
		return RefProgramLocation{}, false
	}
	for _, function := range program.Functions() {
		for _, block := range function.Blocks() {
			for _, instruction := range block.Instructions() {
				if addr, ok := instruction.Address(); ok && addr == address {
					return NewRefProgramLocation(function, RefInstruction(block, instruction)), true
				}
			}
		}
	}
	return RefProgramLocation{}, false
}

// Function returns the function this location lives in.
func (l RefProgramLocation) Function() *il.Function { return l.function }

// FunctionLocation returns the function-scoped part of this location.
func (l RefProgramLocation) FunctionLocation() RefFunctionLocation { return l.location }

// Instruction returns the referenced instruction if this location is at
// one, nil otherwise.
func (l RefProgramLocation) Instruction() *il.Instruction { return l.location.Instruction() }

// Address returns the referenced instruction's address. ok is false when
// the location is not at an instruction or the instruction carries no
// address.
func (l RefProgramLocation) Address() (uint64, bool) {
	instruction := l.location.Instruction()
	if instruction == nil {
		return 0, false
	}
	return instruction.Address()
}

// Owned lowers the location to its index-only form. Lowering is total.
func (l RefProgramLocation) Owned() ProgramLocation {
	return ProgramLocation{Function: l.function.Index(), Location: l.location.Owned()}
}

// String returns a human-readable representation of the location.
func (l RefProgramLocation) String() string {
	return fmt.Sprintf("fn%d %s", l.function.Index(), l.location)
}
