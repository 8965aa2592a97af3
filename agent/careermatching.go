package agent

import (
	"context"
	"time"

	"github.com/careercompass/compass/catalog"
	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/jobs"
	"github.com/careercompass/compass/match"
)

// CareerMatching scores the student's available courses against the
// skills demanded by the job market. It derives its inputs on its own
// so it does not depend on any other agent having run.
type CareerMatching struct {
	source jobs.Source
	store  *catalog.Store
	opts   Options
}

// NewCareerMatching creates a career matching agent.
func NewCareerMatching(source jobs.Source, store *catalog.Store, optFns ...func(o *Options)) *CareerMatching {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &CareerMatching{source: source, store: store, opts: opts}
}

// Name implements the Agent interface.
func (a *CareerMatching) Name() string { return core.AgentCareerMatching }

// Run implements the Agent interface.
func (a *CareerMatching) Run(ctx context.Context, q core.Query) core.AgentResult {
	return run(ctx, a.Name(), a.opts, func(ctx context.Context) core.AgentResult {
		start := time.Now()

		postings, err := a.source.Fetch(ctx, q.CareerGoal)
		if err != nil {
			return core.FailedResult(a.Name(), fetchKind(ctx, err), err.Error(), time.Since(start))
		}

		courses, err := a.store.Courses(ctx)
		if err != nil {
			return core.FailedResult(a.Name(), kindFor(ctx, err, core.KindFetch), err.Error(), time.Since(start))
		}

		skills := jobs.ExtractSkillsAll(postings)
		filtered := catalog.Filter(courses, q.Major, q.Level)
		ranked := match.RankCourses(skills, filtered)

		payload := core.Payload{CareerMatching: &core.CareerMatchingPayload{RankedCourses: ranked}}
		return core.OKResult(a.Name(), payload, time.Since(start))
	})
}
