// Package guidance runs the full agent roster concurrently for one
// query and merges their results into a single ordered response.
package guidance

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/careercompass/compass/agent"
	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/logging"
	"github.com/careercompass/compass/model"
)

// Options configures an Orchestrator.
type Options struct {
	// OverallTimeout bounds one Process call end to end. Agents still
	// running at the deadline are reported as timed out. Zero disables
	// the bound.
	OverallTimeout time.Duration

	// Completer, when set, is used to synthesize a narrative over the
	// successful results. A nil Completer disables the narrative.
	Completer model.Completer

	// NarrativeTimeout bounds the single narrative call.
	NarrativeTimeout time.Duration

	// Logger receives orchestration log records.
	Logger logging.Logger
}

// Orchestrator fans a query out to every registered agent, joins all
// of them, and assembles the unified response. Agents share no mutable
// state, so the only coordination point is the final join.
type Orchestrator struct {
	agents []agent.Agent
	opts   Options
}

// New creates an Orchestrator over the given agents.
func New(agents []agent.Agent, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		OverallTimeout:   60 * time.Second,
		NarrativeTimeout: 15 * time.Second,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{agents: agents, opts: opts}
}

// Process runs every agent against the query and returns the merged
// response. It never returns an error: per-agent failures are carried
// inside the results and reflected in the overall status.
func (o *Orchestrator) Process(ctx context.Context, q core.Query) core.UnifiedResponse {
	start := time.Now()

	if o.opts.OverallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.OverallTimeout)
		defer cancel()
	}

	var (
		mu      sync.Mutex
		results = make(map[string]core.AgentResult, len(o.agents))
		wg      sync.WaitGroup
	)

	for _, ag := range o.agents {
		wg.Add(1)
		go func(ag agent.Agent) {
			defer wg.Done()
			res := ag.Run(ctx, q)
			mu.Lock()
			results[ag.Name()] = res
			mu.Unlock()
		}(ag)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Agents that honor the context will still land shortly; give
		// them a moment so their own timeout classification wins.
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	mu.Lock()
	ordered := o.orderResults(results, time.Since(start))
	mu.Unlock()

	resp := core.UnifiedResponse{
		SessionID: q.SessionID,
		Results:   ordered,
		Overall:   core.ComputeOverall(ordered),
	}
	resp.Narrative = o.narrative(ctx, q, ordered)

	o.opts.Logger.Info("guidance processed",
		"session_id", q.SessionID,
		"overall", resp.Overall,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp
}

// orderResults arranges results in the fixed response order and fills
// a timeout result for any agent that never reported back. Registered
// agents outside the fixed order are appended in registration order.
func (o *Orchestrator) orderResults(results map[string]core.AgentResult, elapsed time.Duration) []core.AgentResult {
	resultFor := func(name string) core.AgentResult {
		if res, ok := results[name]; ok {
			return res
		}
		return core.FailedResult(name, core.KindTimeout, "agent did not complete before the overall deadline", elapsed)
	}

	known := make(map[string]bool, len(core.AgentOrder))
	ordered := make([]core.AgentResult, 0, len(o.agents))
	for _, name := range core.AgentOrder {
		known[name] = true
		if o.hasAgent(name) {
			ordered = append(ordered, resultFor(name))
		}
	}
	for _, ag := range o.agents {
		if !known[ag.Name()] {
			ordered = append(ordered, resultFor(ag.Name()))
		}
	}
	return ordered
}

func (o *Orchestrator) hasAgent(name string) bool {
	for _, ag := range o.agents {
		if ag.Name() == name {
			return true
		}
	}
	return false
}

// narrative asks the completer for a short synthesis over the
// successful results. Any failure here, including an expired context,
// leaves the narrative empty without touching the overall status.
func (o *Orchestrator) narrative(ctx context.Context, q core.Query, results []core.AgentResult) string {
	if o.opts.Completer == nil {
		return ""
	}
	prompt, ok := narrativePrompt(q, results)
	if !ok {
		return ""
	}
	if o.opts.NarrativeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.NarrativeTimeout)
		defer cancel()
	}
	text, err := o.opts.Completer.Complete(ctx, prompt)
	if err != nil {
		o.opts.Logger.Warn("narrative synthesis failed", "session_id", q.SessionID, "error", err.Error())
		return ""
	}
	return text
}

// narrativePrompt renders the successful payloads into a synthesis
// prompt. ok is false when no agent produced anything to synthesize.
func narrativePrompt(q core.Query, results []core.AgentResult) (string, bool) {
	var sections []string
	for _, res := range results {
		if res.Status == core.StatusFailed {
			continue
		}
		switch {
		case res.Payload.JobMarket != nil:
			p := res.Payload.JobMarket
			sections = append(sections, fmt.Sprintf("Job market (%d postings): skills in demand are %s. %s",
				p.PostingCount, strings.Join(p.Skills, ", "), p.Summary))
		case res.Payload.CourseCatalog != nil:
			var codes []string
			for _, c := range res.Payload.CourseCatalog.Courses {
				codes = append(codes, c.Code)
			}
			sections = append(sections, fmt.Sprintf("Available courses: %s.", strings.Join(codes, ", ")))
		case res.Payload.CareerMatching != nil:
			var lines []string
			for _, rc := range res.Payload.CareerMatching.RankedCourses {
				lines = append(lines, fmt.Sprintf("%s (%.2f)", rc.Course.Code, rc.Score))
			}
			sections = append(sections, fmt.Sprintf("Best-matching courses: %s.", strings.Join(lines, ", ")))
		case res.Payload.ProjectAdvisor != nil:
			var titles []string
			for _, p := range res.Payload.ProjectAdvisor.Projects {
				titles = append(titles, p.Title)
			}
			if len(titles) > 0 {
				sections = append(sections, fmt.Sprintf("Suggested projects: %s.", strings.Join(titles, ", ")))
			}
		}
	}
	if len(sections) == 0 {
		return "", false
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a career advisor. A %s student majoring in %s wants to become a %s.\n\n", q.Level, q.Major, q.CareerGoal)
	sb.WriteString("Findings:\n")
	for _, s := range sections {
		sb.WriteString("- ")
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	sb.WriteString("\nWrite a short, encouraging guidance narrative (one paragraph) tying these findings together.")
	return sb.String(), true
}
