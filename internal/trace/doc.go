// Package trace provides structured tracing for sikort.
//
// Commands open a span per invocation, plan execution opens a span per
// plan, and the dispatcher opens a span per runtime call:
//
//	sikort run --trace=- --trace-level=call add.plan.toml
//
// # Implementations
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: circular buffer kept for dumps on failure
//   - MultiTracer: fan-out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing is streamed; ring buffers are dumped on failure
//   - LevelCommand: command boundaries
//   - LevelPlan: plan boundaries
//   - LevelCall: every runtime call
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePlan, "plan:add", parentID)
//	defer span.End("")
package trace
