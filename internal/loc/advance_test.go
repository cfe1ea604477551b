package loc_test

import (
	"strings"
	"testing"

	"talon/internal/il"
	"talon/internal/loc"
)

func TestAdvance_WithinBlock(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)
	bb0 := mustBlock(t, main, 0)

	l := loc.NewRefProgramLocation(main, loc.RefInstruction(bb0, bb0.Instructions()[0]))
	next, err := l.AdvanceForward()
	if err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if len(next) != 1 {
		t.Fatalf("got %d successors, want 1", len(next))
	}
	if got := next[0].Instruction(); got != bb0.Instructions()[1] {
		t.Errorf("successor = %v, want second instruction of bb0", next[0])
	}
}

func TestAdvance_EndOfBlockFanOut(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)
	bb0 := mustBlock(t, main, 0)

	// Last instruction of bb0; bb0 has two out-edges declared as
	// bb0->bb1 then bb0->bb2.
	l := loc.NewRefProgramLocation(main, loc.RefInstruction(bb0, bb0.Instructions()[1]))
	next, err := l.AdvanceForward()
	if err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("got %d successors, want 2", len(next))
	}
	wantTails := []il.BlockIndex{1, 2}
	for i, succ := range next {
		edge := succ.FunctionLocation().Edge()
		if edge == nil {
			t.Fatalf("successor %d is %v, want an edge location", i, succ)
		}
		if edge.Head() != 0 || edge.Tail() != wantTails[i] {
			t.Errorf("successor %d = %s, want bb0 -> bb%d", i, edge, wantTails[i])
		}
	}
}

func TestAdvance_EdgeLandsOnFirstInstruction(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)

	l := loc.NewRefProgramLocation(main, loc.RefEdge(main.Edge(0, 2)))
	next, err := l.AdvanceForward()
	if err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if len(next) != 1 {
		t.Fatalf("got %d successors, want 1", len(next))
	}
	bb2 := mustBlock(t, main, 2)
	if got := next[0].Instruction(); got != bb2.Instructions()[0] {
		t.Errorf("successor = %v, want first instruction of bb2", next[0])
	}
}

func TestAdvance_EdgeLandsOnEmptyBlock(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)

	l := loc.NewRefProgramLocation(main, loc.RefEdge(main.Edge(0, 1)))
	next, err := l.AdvanceForward()
	if err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if len(next) != 1 {
		t.Fatalf("got %d successors, want 1", len(next))
	}
	fl := next[0].FunctionLocation()
	if fl.Kind() != loc.KindEmptyBlock {
		t.Fatalf("successor kind = %v, want empty-block", fl.Kind())
	}
	if fl.Block() != mustBlock(t, main, 1) {
		t.Errorf("successor block = bb%d, want bb1", fl.Block().Index())
	}
}

func TestAdvance_EmptyBlockFanOut(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)

	l := loc.NewRefProgramLocation(main, loc.RefEmptyBlock(mustBlock(t, main, 1)))
	next, err := l.AdvanceForward()
	if err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if len(next) != 1 {
		t.Fatalf("got %d successors, want 1", len(next))
	}
	edge := next[0].FunctionLocation().Edge()
	if edge == nil || edge.Head() != 1 || edge.Tail() != 3 {
		t.Errorf("successor = %v, want edge bb1 -> bb3", next[0])
	}
}

func TestAdvance_TerminalBlock(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)
	bb3 := mustBlock(t, main, 3)

	l := loc.NewRefProgramLocation(main, loc.RefInstruction(bb3, bb3.Instructions()[0]))
	next, err := l.AdvanceForward()
	if err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if len(next) != 0 {
		t.Errorf("got %d successors at program exit, want 0", len(next))
	}
}

// TestAdvance_FullWalk follows one path through main from its first
// instruction down to the exit, checking each structural step.
func TestAdvance_FullWalk(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)
	bb0 := mustBlock(t, main, 0)

	l := loc.NewRefProgramLocation(main, loc.RefInstruction(bb0, bb0.Instructions()[0]))
	want := []string{
		"fn0 bb0/1",        // push -> test
		"fn0 bb0->bb1",     // fan-out; take the first edge
		"fn0 bb1/<empty>",  // edge lands on the empty block
		"fn0 bb1->bb3",     // empty block fans out to its only edge
		"fn0 bb3/0",        // edge lands on ret
	}
	for _, step := range want {
		next, err := l.AdvanceForward()
		if err != nil {
			t.Fatalf("AdvanceForward from %v: %v", l, err)
		}
		if len(next) == 0 {
			t.Fatalf("walk ended early at %v, want %s next", l, step)
		}
		l = next[0]
		if got := l.String(); got != step {
			t.Fatalf("stepped to %s, want %s", got, step)
		}
	}
	next, err := l.AdvanceForward()
	if err != nil {
		t.Fatalf("AdvanceForward from %v: %v", l, err)
	}
	if len(next) != 0 {
		t.Errorf("walk did not terminate at ret: %v", next)
	}
}

func TestAdvance_InstructionNotInBlock(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)

	// An instruction whose index does not occur in the paired block.
	other := il.NewFunction("other")
	ob := other.NewBlock()
	ob.AppendInstruction("a")
	ob.AppendInstruction("b")
	stray := ob.AppendInstruction("c") // index 2

	bb2 := mustBlock(t, main, 2) // holds only instruction 0
	l := loc.NewRefProgramLocation(main, loc.RefInstruction(bb2, stray))
	_, err := l.AdvanceForward()
	if err == nil {
		t.Fatalf("AdvanceForward succeeded with inconsistent location")
	}
	for _, want := range []string{"instruction 2", "block 2", "function 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name %q", err, want)
		}
	}
}
