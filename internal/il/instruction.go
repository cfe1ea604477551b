package il

import "fmt"

// Instruction is an atomic IL operation inside a block. Its semantics are
// opaque to talon; only the index, the optional source address, and the
// display text are observed.
type Instruction struct {
	index   InstructionIndex
	address uint64
	hasAddr bool
	text    string
}

// Index returns the instruction's index within its block.
func (i *Instruction) Index() InstructionIndex { return i.index }

// Address returns the instruction's source address, if it carries one.
func (i *Instruction) Address() (uint64, bool) { return i.address, i.hasAddr }

// Text returns the instruction's display text.
func (i *Instruction) Text() string { return i.text }

// String returns a human-readable representation of the instruction.
func (i *Instruction) String() string {
	if i.hasAddr {
		return fmt.Sprintf("%02d 0x%x %s", i.index, i.address, i.text)
	}
	return fmt.Sprintf("%02d      %s", i.index, i.text)
}
