package il

import (
	"errors"
	"fmt"
)

// Validate checks program structural invariants.
// Returns an error if any invariant is violated.
func Validate(p *Program) error {
	if p == nil {
		return nil
	}
	var errs []error
	seen := make(map[FunctionIndex]bool, len(p.functions))
	for _, f := range p.functions {
		if f == nil {
			continue
		}
		if seen[f.index] {
			errs = append(errs, fmt.Errorf("il: duplicate function index %d", f.index))
			continue
		}
		seen[f.index] = true
		if err := validateFunction(f); err != nil {
			errs = append(errs, fmt.Errorf("il: function %d (%s): %w", f.index, f.name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunction(f *Function) error {
	var errs []error

	// 1. Block indices unique, every block registered in the CFG
	seen := make(map[BlockIndex]bool, len(f.blocks))
	for _, block := range f.blocks {
		if seen[block.index] {
			errs = append(errs, fmt.Errorf("duplicate block index %d", block.index))
			continue
		}
		seen[block.index] = true
		if _, ok := f.cfg.EdgesOut(block.index); !ok {
			errs = append(errs, fmt.Errorf("block %d missing from control flow graph", block.index))
		}
	}

	// 2. Instruction indices unique within each block
	for _, block := range f.blocks {
		seenInstr := make(map[InstructionIndex]bool, len(block.instructions))
		for _, instruction := range block.instructions {
			if seenInstr[instruction.index] {
				errs = append(errs, fmt.Errorf("duplicate instruction index %d in block %d", instruction.index, block.index))
			}
			seenInstr[instruction.index] = true
		}
	}

	// 3. Edge endpoints name existing blocks
	for _, edge := range f.cfg.edges {
		if !seen[edge.head] {
			errs = append(errs, fmt.Errorf("edge %s: head block %d does not exist", edge, edge.head))
		}
		if !seen[edge.tail] {
			errs = append(errs, fmt.Errorf("edge %s: tail block %d does not exist", edge, edge.tail))
		}
	}

	return errors.Join(errs...)
}
