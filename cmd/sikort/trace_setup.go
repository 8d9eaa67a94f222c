package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sikort/internal/config"
	"sikort/internal/trace"
)

// setupTracing builds the tracer from flags and the config file, attaches it
// to the command context and opens a command span. The cleanup ends the span
// and closes the tracer.
func setupTracing(cmd *cobra.Command, cfg *config.Config) (func(), error) {
	output, err := stringSetting(cmd, "trace", cfg.Run.Trace)
	if err != nil {
		return nil, err
	}
	levelStr, err := stringSetting(cmd, "trace-level", cfg.Run.TraceLevel)
	if err != nil {
		return nil, err
	}
	modeStr, err := cmd.Flags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := cmd.Flags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// an output without a level traces plans
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPlan
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	span := trace.Begin(tracer, trace.ScopeCommand, cmd.CommandPath(), 0)
	cmd.SetContext(trace.WithSpan(ctx, span))

	return func() {
		span.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpRing writes the in-memory trace to stderr after a failed command.
func dumpRing(cmd *cobra.Command) {
	var ring *trace.RingTracer
	switch t := trace.FromContext(cmd.Context()).(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring = t.Ring()
	}
	if ring == nil {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before failure:")
	if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
	}
}
