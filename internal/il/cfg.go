package il

// ControlFlowGraph stores the directed edges between a function's blocks.
// Out-edge lists keep insertion order; that order is the fan-out order the
// location subsystem exposes.
type ControlFlowGraph struct {
	edges []*Edge
	out   map[BlockIndex][]*Edge
	in    map[BlockIndex][]*Edge
}

func newControlFlowGraph() *ControlFlowGraph {
	return &ControlFlowGraph{
		out: make(map[BlockIndex][]*Edge),
		in:  make(map[BlockIndex][]*Edge),
	}
}

// addBlock registers a block in the graph with no edges yet.
func (g *ControlFlowGraph) addBlock(index BlockIndex) {
	if _, ok := g.out[index]; !ok {
		g.out[index] = nil
	}
	if _, ok := g.in[index]; !ok {
		g.in[index] = nil
	}
}

func (g *ControlFlowGraph) addEdge(edge *Edge) {
	g.edges = append(g.edges, edge)
	g.out[edge.head] = append(g.out[edge.head], edge)
	g.in[edge.tail] = append(g.in[edge.tail], edge)
}

// Edges returns every edge in the graph in insertion order.
func (g *ControlFlowGraph) Edges() []*Edge { return g.edges }

// EdgesOut returns the edges leaving the given block in insertion order.
// ok is false when the block is not part of the graph at all; a known block
// with no successors yields an empty list and ok=true.
func (g *ControlFlowGraph) EdgesOut(index BlockIndex) ([]*Edge, bool) {
	edges, ok := g.out[index]
	return edges, ok
}

// EdgesIn returns the edges entering the given block in insertion order,
// with the same ok semantics as EdgesOut.
func (g *ControlFlowGraph) EdgesIn(index BlockIndex) ([]*Edge, bool) {
	edges, ok := g.in[index]
	return edges, ok
}
