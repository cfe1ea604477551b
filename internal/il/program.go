package il

// Program is the whole analyzed unit: an ordered set of functions.
type Program struct {
	functions []*Function
	next      FunctionIndex
}

// NewProgram creates an empty program.
func NewProgram() *Program { return &Program{} }

// AddFunction adds a function to the program, assigns its index, and
// returns that index. Indices are assigned in insertion order and never
// reused.
func (p *Program) AddFunction(f *Function) FunctionIndex {
	f.index = p.next
	p.next++
	p.functions = append(p.functions, f)
	return f.index
}

// Functions returns the program's functions in declared order.
func (p *Program) Functions() []*Function { return p.functions }

// Function looks up a function by index. Returns nil if the program has no
// function with that index.
func (p *Program) Function(index FunctionIndex) *Function {
	for _, f := range p.functions {
		if f.index == index {
			return f
		}
	}
	return nil
}
