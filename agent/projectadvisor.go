package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/careercompass/compass/catalog"
	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/jobs"
	"github.com/careercompass/compass/match"
	"github.com/careercompass/compass/model"
)

const (
	// topCourseCount bounds how many ranked courses count as "covered"
	// when looking for skill gaps.
	topCourseCount = 5

	// maxProjects bounds completion calls per run.
	maxProjects = 3
)

// ProjectAdvisor finds skills the job market demands that the
// student's best-matching courses do not teach, and asks the
// completion model for a hands-on project per gap.
type ProjectAdvisor struct {
	source    jobs.Source
	store     *catalog.Store
	completer model.Completer
	opts      Options
}

// NewProjectAdvisor creates a project advisor agent.
func NewProjectAdvisor(source jobs.Source, store *catalog.Store, completer model.Completer, optFns ...func(o *Options)) *ProjectAdvisor {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ProjectAdvisor{source: source, store: store, completer: completer, opts: opts}
}

// Name implements the Agent interface.
func (a *ProjectAdvisor) Name() string { return core.AgentProjectAdvisor }

// Run implements the Agent interface.
func (a *ProjectAdvisor) Run(ctx context.Context, q core.Query) core.AgentResult {
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

		required := jobs.ExtractSkillsAll(postings)
		filtered := catalog.Filter(courses, q.Major, q.Level)
		ranked := match.RankCourses(required, filtered)

		top := make([]core.Course, 0, topCourseCount)
		for i, rc := range ranked {
			if i >= topCourseCount {
				break
			}
			for _, c := range filtered {
				if c.Ref() == rc.Course {
					top = append(top, c)
					break
				}
			}
		}

		gaps := match.UncoveredSkills(required, top)
		if len(gaps) > maxProjects {
			gaps = gaps[:maxProjects]
		}

		projects := make([]core.ProjectSuggestion, 0, len(gaps))
		for _, skill := range gaps {
			desc, err := a.completer.Complete(ctx, projectPrompt(q, skill))
			if err != nil {
				return core.FailedResult(a.Name(), kindFor(ctx, err, core.KindCompletion), err.Error(), time.Since(start))
			}
			projects = append(projects, core.ProjectSuggestion{
				Skill:       skill,
				Title:       fmt.Sprintf("%s portfolio project", skill),
				Description: desc,
			})
		}

		payload := core.Payload{ProjectAdvisor: &core.ProjectAdvisorPayload{Projects: projects}}
		return core.OKResult(a.Name(), payload, time.Since(start))
	})
}
