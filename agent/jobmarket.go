package agent

import (
	"context"
	"errors"
	"time"

	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/jobs"
	"github.com/careercompass/compass/model"
)

// JobMarket analyzes job postings for the student's career goal: it
// fetches postings, extracts in-demand skills, and asks the completion
// model for a short demand summary.
type JobMarket struct {
	source    jobs.Source
	completer model.Completer
	opts      Options
}

// NewJobMarket creates a job market agent.
func NewJobMarket(source jobs.Source, completer model.Completer, optFns ...func(o *Options)) *JobMarket {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &JobMarket{source: source, completer: completer, opts: opts}
}

// Name implements the Agent interface.
func (a *JobMarket) Name() string { return core.AgentJobMarket }

// Run implements the Agent interface.
func (a *JobMarket) Run(ctx context.Context, q core.Query) core.AgentResult {
	return run(ctx, a.Name(), a.opts, func(ctx context.Context) core.AgentResult {
		start := time.Now()

		postings, err := a.source.Fetch(ctx, q.CareerGoal)
		if err != nil {
			return core.FailedResult(a.Name(), fetchKind(ctx, err), err.Error(), time.Since(start))
		}

		skills := jobs.ExtractSkillsAll(postings)

		summary, err := a.completer.Complete(ctx, jobMarketPrompt(q, skills, len(postings)))
		if err != nil {
			return core.FailedResult(a.Name(), kindFor(ctx, err, core.KindCompletion), err.Error(), time.Since(start))
		}

		payload := core.Payload{JobMarket: &core.JobMarketPayload{
			Skills:       skills,
			PostingCount: len(postings),
			Summary:      summary,
		}}
		return core.OKResult(a.Name(), payload, time.Since(start))
	})
}

// fetchKind distinguishes malformed payloads from transport failures.
func fetchKind(ctx context.Context, err error) core.ErrorKind {
	var decodeErr *jobs.DecodeError
	if errors.As(err, &decodeErr) {
		return core.KindParse
	}
	return kindFor(ctx, err, core.KindFetch)
}
