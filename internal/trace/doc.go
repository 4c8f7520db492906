// Package trace records what the front end is doing while it works.
//
// Events are grouped by scope, from coarse to fine:
//
//   - ScopeDriver: one CLI command (tokenize, parse, diag)
//   - ScopePass: a pass over the inputs (load, lex, parse, cache)
//   - ScopeFile: work on a single source file
//   - ScopeRule: a grammar production inside the parser
//
// The level picks how deep to go: LevelPhase shows driver and pass
// boundaries, LevelDetail adds files, LevelDebug adds grammar rules.
//
//	tr, _ := trace.New(trace.Config{Level: trace.LevelDetail, Mode: trace.ModeStream})
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer sp.End("")
//
// A ring tracer keeps the last events in memory so the CLI can dump them
// when a run fails.
package trace
