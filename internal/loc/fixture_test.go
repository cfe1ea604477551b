package loc_test

import (
	"testing"

	"talon/internal/il"
)

// buildProgram builds the two-function program shared by the location
// tests:
//
//	fn0 main:
//	  bb0: 0x1000 push, 0x1004 test    edges: bb0->bb1 [t], bb0->bb2 [f]
//	  bb1: <empty>                     edge:  bb1->bb3
//	  bb2: 0x1008 mov                  edge:  bb2->bb3
//	  bb3: 0x100c ret                  (terminal)
//	fn1 helper:
//	  bb0: 0x1004 dup                  (terminal)
//
// helper's instruction shares main's 0x1004 address on purpose, for the
// first-match determinism tests.
func buildProgram(t *testing.T) *il.Program {
	t.Helper()

	p := il.NewProgram()

	main := il.NewFunction("main")
	bb0 := main.NewBlock()
	bb0.AppendInstructionAt(0x1000, "push")
	bb0.AppendInstructionAt(0x1004, "test")
	main.NewBlock() // bb1, left empty
	bb2 := main.NewBlock()
	bb2.AppendInstructionAt(0x1008, "mov")
	bb3 := main.NewBlock()
	bb3.AppendInstructionAt(0x100c, "ret")
	mustEdge(t, main, 0, 1, "t")
	mustEdge(t, main, 0, 2, "f")
	mustEdge(t, main, 1, 3, "")
	mustEdge(t, main, 2, 3, "")
	p.AddFunction(main)

	helper := il.NewFunction("helper")
	hb0 := helper.NewBlock()
	hb0.AppendInstructionAt(0x1004, "dup")
	p.AddFunction(helper)

	if err := il.Validate(p); err != nil {
		t.Fatalf("fixture program invalid: %v", err)
	}
	return p
}

func mustEdge(t *testing.T, f *il.Function, head, tail il.BlockIndex, label string) {
	t.Helper()
	if _, err := f.AddEdgeWithLabel(head, tail, label); err != nil {
		t.Fatalf("add edge bb%d->bb%d: %v", head, tail, err)
	}
}

// mustBlock fails the test when the function has no block with the index.
func mustBlock(t *testing.T, f *il.Function, index il.BlockIndex) *il.Block {
	t.Helper()
	block := f.Block(index)
	if block == nil {
		t.Fatalf("function %d has no block %d", f.Index(), index)
	}
	return block
}
