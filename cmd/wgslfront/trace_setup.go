package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wgslfront/internal/trace"
)

// setupTracing builds the tracer from flags (or [trace] in wgslfront.toml)
// and attaches it, with a driver span, to the command context.
func (a *app) setupTracing(cmd *cobra.Command) error {
	flags := cmd.Flags()

	levelStr := a.cfg.Trace.Level
	if flags.Changed("trace-level") {
		levelStr, _ = flags.GetString("trace-level")
	}
	output := a.cfg.Trace.Output
	if flags.Changed("trace") {
		output, _ = flags.GetString("trace")
	}
	modeStr, _ := flags.GetString("trace-mode")

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	// на уровне error живой поток пуст, полезен только дамп кольца
	if level == trace.LevelError && !flags.Changed("trace-mode") {
		mode = trace.ModeRing
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	span := trace.Begin(tracer, trace.ScopeDriver, cmd.Name(), 0)
	ctx = trace.WithSpan(trace.WithTracer(ctx, tracer), span.ID())
	cmd.SetContext(ctx)

	a.closeTrace = func() {
		span.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(a.stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(a.stderr, "trace: close error: %v\n", err)
		}
	}
	return nil
}

// dumpRing writes the in-memory trace tail to stderr after a failed run.
func (a *app) dumpRing(ctx context.Context) {
	ring, ok := trace.Ring(trace.FromContext(ctx))
	if !ok {
		return
	}
	fmt.Fprintln(a.stderr, "trace: last events before failure:")
	if err := ring.Dump(a.stderr, trace.FormatText); err != nil {
		fmt.Fprintf(a.stderr, "trace: dump error: %v\n", err)
	}
}
