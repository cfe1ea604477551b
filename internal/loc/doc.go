// Package loc names positions inside an IL program and moves them along
// control flow.
//
// There are two paired representations of a position:
//
// RefProgramLocation and its companion RefFunctionLocation hold direct
// references into one program instance. They are cheap to navigate but are
// only meaningful against that instance.
//
// ProgramLocation and its companion FunctionLocation hold only indices.
// They are plain data: freely copyable, serializable, and independent of
// any program instance.
//
// Go does not track borrows, so the aliasing contract is by convention: a
// program must not be mutated while Ref locations derived from it are
// alive, and Ref locations drawn from two different programs must never be
// mixed in one operation. Lower a Ref location with Owned to persist it,
// re-resolve with Apply (silent miss) against the same program, or with
// Migrate (diagnostic failure) against a structurally correspondent one.
//
// Advancement is structural: it yields the next position(s) in graph
// order and never follows where a branch actually transfers control.
package loc
