// Package il defines the intermediate representation graph that talon
// analyses navigate: a Program of Functions, each a control-flow graph of
// Blocks holding Instructions, connected by Edges.
//
// Every entity carries a stable numeric index assigned by its builder.
// Indices are never reused within an instance, children enumerate in
// insertion order, and lookups return nil (or ok=false) on a miss. The
// location subsystem in internal/loc depends on exactly these guarantees;
// a program must not be mutated while locations derived from it are alive.
package il
