package il

// Block is an ordered sequence of instructions, identified by index within
// its function.
type Block struct {
	index        BlockIndex
	instructions []*Instruction
	next         InstructionIndex
}

// Index returns the block's index within its function.
func (b *Block) Index() BlockIndex { return b.index }

// Instructions returns the block's instructions in declared order.
func (b *Block) Instructions() []*Instruction { return b.instructions }

// Instruction looks up an instruction by index. Returns nil if the block
// has no instruction with that index.
func (b *Block) Instruction(index InstructionIndex) *Instruction {
	for _, instruction := range b.instructions {
		if instruction.index == index {
			return instruction
		}
	}
	return nil
}

// IsEmpty reports whether the block holds no instructions.
func (b *Block) IsEmpty() bool { return len(b.instructions) == 0 }

// AppendInstruction appends an instruction with no address and returns it.
// The instruction index is assigned by the block and never reused.
func (b *Block) AppendInstruction(text string) *Instruction {
	instruction := &Instruction{index: b.next, text: text}
	b.next++
	b.instructions = append(b.instructions, instruction)
	return instruction
}

// AppendInstructionAt appends an instruction carrying a source address.
func (b *Block) AppendInstructionAt(address uint64, text string) *Instruction {
	instruction := b.AppendInstruction(text)
	instruction.address = address
	instruction.hasAddr = true
	return instruction
}
