package il

import "fmt"

// Function is a control-flow graph of blocks, identified by index within a
// program. The index is assigned when the function is added to a Program;
// before that it is meaningless.
type Function struct {
	index  FunctionIndex
	name   string
	blocks []*Block
	cfg    *ControlFlowGraph
	next   BlockIndex
}

// NewFunction creates an empty function with the given display name.
func NewFunction(name string) *Function {
	return &Function{name: name, cfg: newControlFlowGraph()}
}

// Index returns the function's index within its program. Valid only after
// the function has been added to a Program.
func (f *Function) Index() FunctionIndex { return f.index }

// Name returns the function's display name.
func (f *Function) Name() string { return f.name }

// Blocks returns the function's blocks in declared order.
func (f *Function) Blocks() []*Block { return f.blocks }

// Block looks up a block by index. Returns nil if the function has no block
// with that index.
func (f *Function) Block(index BlockIndex) *Block {
	for _, block := range f.blocks {
		if block.index == index {
			return block
		}
	}
	return nil
}

// NewBlock appends a new empty block, registers it in the control-flow
// graph, and returns it. The block index is assigned by the function and
// never reused.
func (f *Function) NewBlock() *Block {
	block := &Block{index: f.next}
	f.next++
	f.blocks = append(f.blocks, block)
	f.cfg.addBlock(block.index)
	return block
}

// AddEdge connects two existing blocks in the control-flow graph.
func (f *Function) AddEdge(head, tail BlockIndex) (*Edge, error) {
	return f.AddEdgeWithLabel(head, tail, "")
}

// AddEdgeWithLabel connects two existing blocks with a display label.
func (f *Function) AddEdgeWithLabel(head, tail BlockIndex, label string) (*Edge, error) {
	if f.Block(head) == nil {
		return nil, fmt.Errorf("il: edge head block %d not found in function %d", head, f.index)
	}
	if f.Block(tail) == nil {
		return nil, fmt.Errorf("il: edge tail block %d not found in function %d", tail, f.index)
	}
	edge := &Edge{head: head, tail: tail, label: label}
	f.cfg.addEdge(edge)
	return edge, nil
}

// Edge looks up an edge by its (head, tail) index pair. Returns nil if the
// control-flow graph has no such edge.
func (f *Function) Edge(head, tail BlockIndex) *Edge {
	for _, edge := range f.cfg.edges {
		if edge.head == head && edge.tail == tail {
			return edge
		}
	}
	return nil
}

// CFG returns the function's control-flow graph.
func (f *Function) CFG() *ControlFlowGraph { return f.cfg }
