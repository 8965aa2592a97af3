package testutil

import (
	"github.com/careercompass/compass/core"
)

// Query returns a representative graduate business analytics query.
func Query() core.Query {
	return core.NewQuery(
		"I want to work with data",
		"business analytics",
		"graduate",
		"data analyst",
		"",
	)
}

// ResultBuilder constructs agent results with fluent chaining.
// Example:
//
//	res := NewResultBuilder(core.AgentJobMarket).Skills("Python", "SQL").Build()
type ResultBuilder struct {
	name    string
	payload core.Payload
	err     *core.ErrorInfo
}

// NewResultBuilder creates a builder for the named agent. With no
// payload methods called, Build returns an ok result whose payload
// matches the agent's variant with sensible sample content.
func NewResultBuilder(name string) *ResultBuilder {
	return &ResultBuilder{name: name}
}

// Skills sets a job market payload with the given skills (chainable).
func (b *ResultBuilder) Skills(skills ...string) *ResultBuilder {
	b.payload = core.Payload{JobMarket: &core.JobMarketPayload{
		Skills:       skills,
		PostingCount: len(skills),
		Summary:      "Demand is strong across these skills.",
	}}
	return b
}

// Courses sets a course catalog payload (chainable).
func (b *ResultBuilder) Courses(refs ...core.CourseRef) *ResultBuilder {
	b.payload = core.Payload{CourseCatalog: &core.CourseCatalogPayload{Courses: refs}}
	return b
}

// Ranked sets a career matching payload (chainable).
func (b *ResultBuilder) Ranked(ranked ...core.RankedCourse) *ResultBuilder {
	b.payload = core.Payload{CareerMatching: &core.CareerMatchingPayload{RankedCourses: ranked}}
	return b
}

// Projects sets a project advisor payload (chainable).
func (b *ResultBuilder) Projects(projects ...core.ProjectSuggestion) *ResultBuilder {
	b.payload = core.Payload{ProjectAdvisor: &core.ProjectAdvisorPayload{Projects: projects}}
	return b
}

// Failed marks the result failed with the given kind (chainable).
func (b *ResultBuilder) Failed(kind core.ErrorKind, msg string) *ResultBuilder {
	b.err = &core.ErrorInfo{Kind: kind, Message: msg}
	return b
}

// Build returns the assembled result.
func (b *ResultBuilder) Build() core.AgentResult {
	if b.err != nil {
		return core.FailedResult(b.name, b.err.Kind, b.err.Message, 0)
	}
	if b.payload.Empty() {
		b.payload = defaultPayload(b.name)
	}
	return core.OKResult(b.name, b.payload, 0)
}

func defaultPayload(name string) core.Payload {
	switch name {
	case core.AgentJobMarket:
		return core.Payload{JobMarket: &core.JobMarketPayload{
			Skills:       []string{"Python", "SQL"},
			PostingCount: 3,
			Summary:      "Python and SQL dominate current postings.",
		}}
	case core.AgentCourseCatalog:
		return core.Payload{CourseCatalog: &core.CourseCatalogPayload{
			Courses: []core.CourseRef{{Code: "BUAN 6320", Title: "Database Foundations for Business Analytics"}},
		}}
	case core.AgentCareerMatching:
		return core.Payload{CareerMatching: &core.CareerMatchingPayload{
			RankedCourses: []core.RankedCourse{{Course: core.CourseRef{Code: "BUAN 6320", Title: "Database Foundations for Business Analytics"}, Score: 0.82}},
		}}
	case core.AgentProjectAdvisor:
		return core.Payload{ProjectAdvisor: &core.ProjectAdvisorPayload{
			Projects: []core.ProjectSuggestion{{Skill: "Tableau", Title: "Tableau portfolio project", Description: "Build a dashboard."}},
		}}
	}
	return core.Payload{}
}

// OKResponse assembles a full all_ok unified response in the fixed
// agent order.
func OKResponse(sessionID string) core.UnifiedResponse {
	results := make([]core.AgentResult, 0, len(core.AgentOrder))
	for _, name := range core.AgentOrder {
		results = append(results, NewResultBuilder(name).Build())
	}
	return core.UnifiedResponse{
		SessionID: sessionID,
		Results:   results,
		Overall:   core.ComputeOverall(results),
	}
}
