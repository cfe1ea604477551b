package il

// FunctionIndex identifies a function within a program.
type FunctionIndex uint64

// BlockIndex identifies a block within a function.
type BlockIndex uint64

// InstructionIndex identifies an instruction within a block.
type InstructionIndex uint64
