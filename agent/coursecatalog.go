package agent

import (
	"context"
	"time"

	"github.com/careercompass/compass/catalog"
	"github.com/careercompass/compass/core"
)

// CourseCatalog recommends courses for the student's major and level.
// It reads from the shared catalog store and never calls the
// completion model, so it stays available when the model is down.
type CourseCatalog struct {
	store *catalog.Store
	opts  Options
}

// NewCourseCatalog creates a course catalog agent.
func NewCourseCatalog(store *catalog.Store, optFns ...func(o *Options)) *CourseCatalog {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &CourseCatalog{store: store, opts: opts}
}

// Name implements the Agent interface.
func (a *CourseCatalog) Name() string { return core.AgentCourseCatalog }

// Run implements the Agent interface.
func (a *CourseCatalog) Run(ctx context.Context, q core.Query) core.AgentResult {
	return run(ctx, a.Name(), a.opts, func(ctx context.Context) core.AgentResult {
		start := time.Now()

		courses, err := a.store.Courses(ctx)
		if err != nil {
			return core.FailedResult(a.Name(), kindFor(ctx, err, core.KindFetch), err.Error(), time.Since(start))
		}

		filtered := catalog.Filter(courses, q.Major, q.Level)
		refs := make([]core.CourseRef, 0, len(filtered))
		for _, c := range filtered {
			refs = append(refs, c.Ref())
		}

		payload := core.Payload{CourseCatalog: &core.CourseCatalogPayload{Courses: refs}}
		return core.OKResult(a.Name(), payload, time.Since(start))
	})
}
