package loc_test

import (
	"testing"

	"talon/internal/il"
	"talon/internal/loc"
)

func TestFromAddress_Found(t *testing.T) {
	p := buildProgram(t)

	l, ok := loc.FromAddress(p, 0x1008)
	if !ok {
		t.Fatalf("FromAddress(0x1008) not found")
	}
	if l.Function().Name() != "main" {
		t.Errorf("found in function %q, want main", l.Function().Name())
	}
	if l.FunctionLocation().Kind() != loc.KindInstruction {
		t.Fatalf("kind = %v, want instruction", l.FunctionLocation().Kind())
	}
	if got := l.Instruction().Text(); got != "mov" {
		t.Errorf("instruction text = %q, want mov", got)
	}
	if addr, ok := l.Address(); !ok || addr != 0x1008 {
		t.Errorf("Address() = %#x, %v, want 0x1008, true", addr, ok)
	}
}

func TestFromAddress_NotFound(t *testing.T) {
	p := buildProgram(t)
	if l, ok := loc.FromAddress(p, 0x2000); ok {
		t.Errorf("FromAddress(0x2000) = %v, want not found", l)
	}
}

func TestFromAddress_FirstMatchDeterminism(t *testing.T) {
	p := buildProgram(t)

	// 0x1004 exists in both main (fn0) and helper (fn1); declared order
	// dictates main wins, every time.
	for n := 0; n < 16; n++ {
		l, ok := loc.FromAddress(p, 0x1004)
		if !ok {
			t.Fatalf("FromAddress(0x1004) not found")
		}
		if l.Function().Index() != 0 {
			t.Fatalf("found in function %d, want 0", l.Function().Index())
		}
		if got := l.Instruction().Text(); got != "test" {
			t.Fatalf("instruction text = %q, want test", got)
		}
	}
}

func TestAccessors_NonInstructionKinds(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)

	edge := main.Edge(0, 1)
	if edge == nil {
		t.Fatalf("fixture has no edge bb0->bb1")
	}
	onEdge := loc.NewRefProgramLocation(main, loc.RefEdge(edge))
	if onEdge.Instruction() != nil {
		t.Errorf("edge location Instruction() = %v, want nil", onEdge.Instruction())
	}
	if _, ok := onEdge.Address(); ok {
		t.Errorf("edge location Address() ok, want false")
	}
	if onEdge.FunctionLocation().Edge() != edge {
		t.Errorf("edge accessor does not return the referenced edge")
	}
	if onEdge.FunctionLocation().Block() != nil {
		t.Errorf("edge location Block() non-nil")
	}

	empty := loc.NewRefProgramLocation(main, loc.RefEmptyBlock(mustBlock(t, main, 1)))
	if empty.Instruction() != nil {
		t.Errorf("empty-block location Instruction() non-nil")
	}
	if empty.FunctionLocation().Block() != mustBlock(t, main, 1) {
		t.Errorf("empty-block accessor does not return the referenced block")
	}
}

func TestAddress_InstructionWithoutAddress(t *testing.T) {
	p := il.NewProgram()
	f := il.NewFunction("raw")
	bb0 := f.NewBlock()
	instruction := bb0.AppendInstruction("nop")
	p.AddFunction(f)

	l := loc.NewRefProgramLocation(f, loc.RefInstruction(bb0, instruction))
	if _, ok := l.Address(); ok {
		t.Errorf("Address() ok for address-less instruction, want false")
	}
}

func TestLowerApplyRoundTrip(t *testing.T) {
	p := buildProgram(t)
	main := p.Function(0)
	bb0 := mustBlock(t, main, 0)

	refs := []loc.RefProgramLocation{
		loc.NewRefProgramLocation(main, loc.RefInstruction(bb0, bb0.Instructions()[1])),
		loc.NewRefProgramLocation(main, loc.RefEdge(main.Edge(0, 2))),
		loc.NewRefProgramLocation(main, loc.RefEmptyBlock(mustBlock(t, main, 1))),
	}
	for _, ref := range refs {
		owned := ref.Owned()
		back, ok := owned.Apply(p)
		if !ok {
			t.Fatalf("apply(lower(%v)) missed against the same program", ref)
		}
		if back != ref {
			t.Errorf("round trip changed the location: %v -> %v", ref, back)
		}
	}
}

func TestApply_SoftMiss(t *testing.T) {
	p := buildProgram(t)

	cases := []struct {
		name string
		l    loc.ProgramLocation
	}{
		{"unknown function", loc.ProgramLocation{Function: 7, Location: loc.InstructionLocation(0, 0)}},
		{"unknown block", loc.ProgramLocation{Function: 0, Location: loc.InstructionLocation(9, 0)}},
		{"unknown instruction", loc.ProgramLocation{Function: 0, Location: loc.InstructionLocation(0, 9)}},
		{"unknown edge", loc.ProgramLocation{Function: 0, Location: loc.EdgeLocation(3, 0)}},
		{"unknown empty block", loc.ProgramLocation{Function: 0, Location: loc.EmptyBlockLocation(9)}},
		{"zero kind", loc.ProgramLocation{Function: 0}},
	}
	for _, tc := range cases {
		if got, ok := tc.l.Apply(p); ok {
			t.Errorf("%s: Apply = %v, want miss", tc.name, got)
		}
	}
}

func TestLocationString(t *testing.T) {
	cases := []struct {
		l    loc.ProgramLocation
		want string
	}{
		{loc.ProgramLocation{Function: 0, Location: loc.InstructionLocation(2, 0)}, "fn0 bb2/0"},
		{loc.ProgramLocation{Function: 1, Location: loc.EdgeLocation(0, 3)}, "fn1 bb0->bb3"},
		{loc.ProgramLocation{Function: 0, Location: loc.EmptyBlockLocation(1)}, "fn0 bb1/<empty>"},
	}
	for _, tc := range cases {
		if got := tc.l.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
