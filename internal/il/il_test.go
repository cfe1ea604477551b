package il_test

import (
	"strings"
	"testing"

	"talon/internal/il"
)

func buildFunction(t *testing.T) *il.Function {
	t.Helper()
	f := il.NewFunction("f")
	bb0 := f.NewBlock()
	bb0.AppendInstructionAt(0x10, "a")
	bb0.AppendInstructionAt(0x14, "b")
	f.NewBlock() // bb1, empty
	if _, err := f.AddEdge(0, 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return f
}

func TestBuilderAssignsSequentialIndices(t *testing.T) {
	p := il.NewProgram()
	f := buildFunction(t)
	g := il.NewFunction("g")
	g.NewBlock()

	if got := p.AddFunction(f); got != 0 {
		t.Errorf("first function index = %d, want 0", got)
	}
	if got := p.AddFunction(g); got != 1 {
		t.Errorf("second function index = %d, want 1", got)
	}
	if p.Function(1) != g {
		t.Errorf("Function(1) did not return the second function")
	}
	if p.Function(2) != nil {
		t.Errorf("Function(2) = %v, want nil", p.Function(2))
	}

	blocks := f.Blocks()
	if len(blocks) != 2 || blocks[0].Index() != 0 || blocks[1].Index() != 1 {
		t.Errorf("block indices not sequential: %v", blocks)
	}
	instructions := blocks[0].Instructions()
	if len(instructions) != 2 || instructions[0].Index() != 0 || instructions[1].Index() != 1 {
		t.Errorf("instruction indices not sequential: %v", instructions)
	}
}

func TestLookups(t *testing.T) {
	f := buildFunction(t)

	if f.Block(1) == nil || f.Block(1).Index() != 1 {
		t.Errorf("Block(1) lookup failed")
	}
	if f.Block(5) != nil {
		t.Errorf("Block(5) = %v, want nil", f.Block(5))
	}
	bb0 := f.Block(0)
	if bb0.Instruction(1) == nil || bb0.Instruction(1).Text() != "b" {
		t.Errorf("Instruction(1) lookup failed")
	}
	if bb0.Instruction(9) != nil {
		t.Errorf("Instruction(9) non-nil")
	}
	if f.Edge(0, 1) == nil {
		t.Errorf("Edge(0,1) lookup failed")
	}
	if f.Edge(1, 0) != nil {
		t.Errorf("Edge(1,0) non-nil")
	}
}

func TestEdgesOutSemantics(t *testing.T) {
	f := buildFunction(t)

	edges, ok := f.CFG().EdgesOut(0)
	if !ok || len(edges) != 1 {
		t.Fatalf("EdgesOut(0) = %v, %v; want one edge, true", edges, ok)
	}

	// A known block with no successors is distinct from an unknown block.
	edges, ok = f.CFG().EdgesOut(1)
	if !ok || len(edges) != 0 {
		t.Errorf("EdgesOut(1) = %v, %v; want empty, true", edges, ok)
	}
	if _, ok := f.CFG().EdgesOut(9); ok {
		t.Errorf("EdgesOut(9) ok for a block not in the graph")
	}
}

func TestEdgesOutPreservesInsertionOrder(t *testing.T) {
	f := il.NewFunction("fanout")
	f.NewBlock()
	f.NewBlock()
	f.NewBlock()
	f.NewBlock()
	for _, tail := range []il.BlockIndex{3, 1, 2} {
		if _, err := f.AddEdge(0, tail); err != nil {
			t.Fatalf("AddEdge(0,%d): %v", tail, err)
		}
	}
	edges, ok := f.CFG().EdgesOut(0)
	if !ok || len(edges) != 3 {
		t.Fatalf("EdgesOut(0) = %v, %v", edges, ok)
	}
	want := []il.BlockIndex{3, 1, 2}
	for i, edge := range edges {
		if edge.Tail() != want[i] {
			t.Errorf("edge %d tail = %d, want %d", i, edge.Tail(), want[i])
		}
	}
}

func TestAddEdgeUnknownBlock(t *testing.T) {
	f := buildFunction(t)
	if _, err := f.AddEdge(0, 7); err == nil {
		t.Errorf("AddEdge(0,7) succeeded, want error")
	}
	if _, err := f.AddEdge(7, 0); err == nil {
		t.Errorf("AddEdge(7,0) succeeded, want error")
	}
}

func TestInstructionAddress(t *testing.T) {
	f := buildFunction(t)
	bb0 := f.Block(0)
	if addr, ok := bb0.Instruction(0).Address(); !ok || addr != 0x10 {
		t.Errorf("Address() = %#x, %v; want 0x10, true", addr, ok)
	}
	plain := bb0.AppendInstruction("nop")
	if _, ok := plain.Address(); ok {
		t.Errorf("address-less instruction reports an address")
	}
}

func TestValidate(t *testing.T) {
	p := il.NewProgram()
	p.AddFunction(buildFunction(t))
	if err := il.Validate(p); err != nil {
		t.Errorf("Validate on a well-formed program: %v", err)
	}
	if err := il.Validate(nil); err != nil {
		t.Errorf("Validate(nil) = %v", err)
	}
}

func TestDigest(t *testing.T) {
	p1 := il.NewProgram()
	p1.AddFunction(buildFunction(t))
	p2 := il.NewProgram()
	p2.AddFunction(buildFunction(t))

	if il.Digest(p1) != il.Digest(p2) {
		t.Errorf("structurally identical programs digest differently")
	}

	p2.Function(0).Block(1).AppendInstruction("extra")
	if il.Digest(p1) == il.Digest(p2) {
		t.Errorf("digest unchanged after structural change")
	}
}

func TestSprint(t *testing.T) {
	p := il.NewProgram()
	p.AddFunction(buildFunction(t))
	out := il.Sprint(p)
	for _, want := range []string{"funcs=1", "fn 0 f", "bb0:", "bb1: <empty>", "bb0 -> bb1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Sprint output missing %q:\n%s", want, out)
		}
	}
}
