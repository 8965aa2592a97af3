package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careercompass/compass/catalog"
	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/jobs"
	"github.com/careercompass/compass/model"
)

type failingJobSource struct{ err error }

func (s *failingJobSource) Fetch(context.Context, string) ([]core.JobPosting, error) {
	return nil, s.err
}

type failingCatalogSource struct{ err error }

func (s *failingCatalogSource) Fetch(context.Context) ([]core.Course, error) {
	return nil, s.err
}

func testQuery() core.Query {
	return core.NewQuery(
		"I want to become a data analyst",
		"business analytics",
		"graduate",
		"data analyst",
		"",
	)
}

func TestRunRecoversPanic(t *testing.T) {
	res := run(context.Background(), "panicky", defaultOptions(), func(context.Context) core.AgentResult {
		panic("boom")
	})

	assert.Equal(t, core.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, core.KindInternal, res.Err.Kind)
	assert.Contains(t, res.Err.Message, "boom")
	assert.True(t, res.Payload.Empty())
	assert.True(t, res.Valid())
}

func TestAgentsHandleEmptyQuery(t *testing.T) {
	store := catalog.NewStore(catalog.NewStaticSource())
	completer := model.NewMockCompleter()
	agents := []Agent{
		NewJobMarket(jobs.NewSampleSource(), completer),
		NewCourseCatalog(store),
		NewCareerMatching(jobs.NewSampleSource(), store),
		NewProjectAdvisor(jobs.NewSampleSource(), store, completer),
	}

	for _, ag := range agents {
		res := ag.Run(context.Background(), core.Query{})
		assert.Equal(t, ag.Name(), res.AgentName)
		assert.NotEmpty(t, res.Status, "agent %s", ag.Name())
		assert.True(t, res.Valid(), "agent %s", ag.Name())
	}
}

func TestJobMarketRun(t *testing.T) {
	agent := NewJobMarket(jobs.NewSampleSource(), model.NewMockCompleter())

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.AgentJobMarket, res.AgentName)
	assert.Equal(t, core.StatusOK, res.Status)
	assert.True(t, res.Valid())
	require.NotNil(t, res.Payload.JobMarket)
	assert.NotEmpty(t, res.Payload.JobMarket.Skills)
	assert.Greater(t, res.Payload.JobMarket.PostingCount, 0)
	assert.NotEmpty(t, res.Payload.JobMarket.Summary)
}

func TestJobMarketFetchFailure(t *testing.T) {
	source := &failingJobSource{err: errors.New("connection refused")}
	agent := NewJobMarket(source, model.NewMockCompleter())

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, core.KindFetch, res.Err.Kind)
	assert.True(t, res.Payload.Empty())
}

func TestJobMarketParseFailure(t *testing.T) {
	source := &failingJobSource{err: &jobs.DecodeError{Err: errors.New("unexpected EOF")}}
	agent := NewJobMarket(source, model.NewMockCompleter())

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, core.KindParse, res.Err.Kind)
}

func TestJobMarketCompletionFailure(t *testing.T) {
	completer := model.NewMockCompleter()
	completer.FailWith(errors.New("model unavailable"))
	agent := NewJobMarket(jobs.NewSampleSource(), completer)

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, core.KindCompletion, res.Err.Kind)
	assert.True(t, res.Payload.Empty())
}

func TestJobMarketTimeout(t *testing.T) {
	completer := model.NewMockCompleter()
	completer.Delay(200 * time.Millisecond)
	agent := NewJobMarket(jobs.NewSampleSource(), completer, func(o *Options) {
		o.Timeout = 20 * time.Millisecond
	})

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, core.KindTimeout, res.Err.Kind)
}

func TestCourseCatalogRun(t *testing.T) {
	store := catalog.NewStore(catalog.NewStaticSource())
	agent := NewCourseCatalog(store)

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.AgentCourseCatalog, res.AgentName)
	assert.Equal(t, core.StatusOK, res.Status)
	require.NotNil(t, res.Payload.CourseCatalog)
	require.NotEmpty(t, res.Payload.CourseCatalog.Courses)
	for _, ref := range res.Payload.CourseCatalog.Courses {
		prefix, number, err := catalog.ParseCode(ref.Code)
		require.NoError(t, err)
		assert.Contains(t, []string{"BUAN", "MIS", "OPRE"}, prefix)
		assert.GreaterOrEqual(t, number, 5000)
	}
}

func TestCourseCatalogStoreFailure(t *testing.T) {
	store := catalog.NewStore(&failingCatalogSource{err: errors.New("upstream 503")})
	agent := NewCourseCatalog(store)

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, core.KindFetch, res.Err.Kind)
	assert.True(t, res.Payload.Empty())
}

func TestCourseCatalogNoCompletionDependency(t *testing.T) {
	// The catalog agent must keep working when the model is down.
	store := catalog.NewStore(catalog.NewStaticSource())
	agent := NewCourseCatalog(store)

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.StatusOK, res.Status)
}

func TestCareerMatchingRun(t *testing.T) {
	store := catalog.NewStore(catalog.NewStaticSource())
	agent := NewCareerMatching(jobs.NewSampleSource(), store)

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.AgentCareerMatching, res.AgentName)
	assert.Equal(t, core.StatusOK, res.Status)
	require.NotNil(t, res.Payload.CareerMatching)
	ranked := res.Payload.CareerMatching.RankedCourses
	require.NotEmpty(t, ranked)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i].Score, ranked[i-1].Score)
	}
}

func TestCareerMatchingFetchFailure(t *testing.T) {
	store := catalog.NewStore(catalog.NewStaticSource())
	source := &failingJobSource{err: errors.New("dns failure")}
	agent := NewCareerMatching(source, store)

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.StatusFailed, res.Status)
	require.NotNil(t, res.Err)
	assert.Equal(t, core.KindFetch, res.Err.Kind)
}

func TestProjectAdvisorRun(t *testing.T) {
	store := catalog.NewStore(catalog.NewStaticSource())
	agent := NewProjectAdvisor(jobs.NewSampleSource(), store, model.NewMockCompleter())

	res := agent.Run(context.Background(), testQuery())

	assert.Equal(t, core.AgentProjectAdvisor, res.AgentName)
	assert.Equal(t, core.StatusOK, res.Status)
	require.NotNil(t, res.Payload.ProjectAdvisor)
	assert.LessOrEqual(t, len(res.Payload.ProjectAdvisor.Projects), maxProjects)
	for _, p := range res.Payload.ProjectAdvisor.Projects {
		assert.NotEmpty(t, p.Skill)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Description)
	}
}

func TestProjectAdvisorCompletionFailure(t *testing.T) {
	store := catalog.NewStore(catalog.NewStaticSource())
	completer := model.NewMockCompleter()
	completer.FailWith(errors.New("model unavailable"))
	agent := NewProjectAdvisor(jobs.NewSampleSource(), store, completer)

	res := agent.Run(context.Background(), testQuery())

	// With no skill gaps there is nothing to ask the model, so only
	// assert the envelope when a completion call actually happened.
	if completer.Calls() > 0 {
		assert.Equal(t, core.StatusFailed, res.Status)
		require.NotNil(t, res.Err)
		assert.Equal(t, core.KindCompletion, res.Err.Kind)
	} else {
		assert.Equal(t, core.StatusOK, res.Status)
	}
}
