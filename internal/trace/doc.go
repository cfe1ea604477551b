// Package trace provides a lightweight tracing subsystem for talon.
//
// Tracing tracks the phases of an analysis run (loading programs, address
// scans, graph walks, migrations) to help diagnose slow or surprising
// runs. It is enabled from the CLI:
//
//	talon walk --trace=- --trace-level=phase prog.toml
//
// Two tracer implementations are provided: a no-op tracer with zero
// overhead when tracing is off, and StreamTracer, which writes each event
// immediately to a file or stderr as text or NDJSON.
//
// Verbosity is controlled by levels (off, phase, detail, debug) and
// events are categorized by scope: ScopeDriver for top-level CLI
// operations, ScopePass for analysis phases, and ScopeStep for individual
// advancement steps.
//
// Tracers propagate through the run via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//	span := trace.Begin(t, trace.ScopePass, "load", 0)
//	defer span.End("")
package trace
