package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/logging"
)

// Agent is a single guidance specialist. Run never returns an error:
// every failure mode is folded into the result envelope so the
// orchestrator can aggregate without special cases.
type Agent interface {
	// Name returns the stable agent identifier used in results.
	Name() string

	// Run executes the agent against the query and returns its result.
	Run(ctx context.Context, q core.Query) core.AgentResult
}

// Options holds configuration shared by the built-in agents.
type Options struct {
	// Timeout bounds a single Run call. Zero disables the per-agent
	// deadline; the caller's context still applies.
	Timeout time.Duration

	// Logger receives per-run log records.
	Logger logging.Logger
}

func defaultOptions() Options {
	return Options{
		Timeout: 15 * time.Second,
		Logger:  logging.NoOpLogger{},
	}
}

// run wraps an agent body with the shared envelope: per-agent
// deadline, panic recovery, latency stamping, and a log record.
func run(ctx context.Context, name string, opts Options, body func(ctx context.Context) core.AgentResult) core.AgentResult {
	start := time.Now()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var res core.AgentResult

	func() {
		defer func() {
			if r := recover(); r != nil {
				res = core.FailedResult(name, core.KindInternal, fmt.Sprintf("panic: %v", r), time.Since(start))
			}
		}()
		res = body(ctx)
	}()

	res.AgentName = name
	res.LatencyMS = time.Since(start).Milliseconds()

	if res.Status == core.StatusFailed && res.Err != nil {
		opts.Logger.Warn("agent run failed", "agent", name, "kind", res.Err.Kind, "error", res.Err.Message, "latency_ms", res.LatencyMS)
	} else {
		opts.Logger.Debug("agent run completed", "agent", name, "status", res.Status, "latency_ms", res.LatencyMS)
	}

	return res
}

// kindFor classifies an error from a single step. A context that has
// expired wins over the step's own classification so that deadline
// overruns surface uniformly as timeouts.
func kindFor(ctx context.Context, err error, fallback core.ErrorKind) core.ErrorKind {
	if ctx.Err() != nil {
		return core.KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return core.KindTimeout
	}
	return fallback
}
