package core

import "time"

// Status classifies the outcome of one agent invocation.
type Status string

const (
	// StatusOK means the agent completed and its payload is fully populated.
	StatusOK Status = "ok"
	// StatusPartial means the agent produced a usable but incomplete payload
	// (for example a summary call failed after data was gathered).
	StatusPartial Status = "partial"
	// StatusFailed means the agent produced no payload; Err is always set.
	StatusFailed Status = "failed"
)

// ErrorKind is the failure taxonomy shared by all agents.
type ErrorKind string

const (
	// KindFetch covers network or HTTP failures reaching an external source.
	KindFetch ErrorKind = "fetch_error"
	// KindParse covers fetched content that could not be interpreted.
	KindParse ErrorKind = "parse_error"
	// KindCompletion covers text-completion calls that failed or returned
	// unusable output.
	KindCompletion ErrorKind = "completion_error"
	// KindTimeout covers any step exceeding its allotted time.
	KindTimeout ErrorKind = "timeout"
	// KindInternal covers recovered panics inside an agent. These indicate a
	// programming bug but are still folded into a failed result so siblings
	// keep running.
	KindInternal ErrorKind = "internal_error"
)

// ErrorInfo describes an agent failure without carrying the underlying Go
// error across the agent boundary.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Agent names in the fixed response order.
const (
	AgentJobMarket      = "job-market"
	AgentCourseCatalog  = "course-catalog"
	AgentCareerMatching = "career-matching"
	AgentProjectAdvisor = "project-advisor"
)

// AgentOrder is the fixed ordering of results in every UnifiedResponse,
// independent of agent completion order.
var AgentOrder = [...]string{
	AgentJobMarket,
	AgentCourseCatalog,
	AgentCareerMatching,
	AgentProjectAdvisor,
}

// JobMarketPayload holds the job-market agent output.
type JobMarketPayload struct {
	Skills       []string `json:"skills"`
	PostingCount int      `json:"posting_count"`
	Summary      string   `json:"summary"`
}

// CourseCatalogPayload holds the course-catalog agent output, in catalog
// order.
type CourseCatalogPayload struct {
	Courses []CourseRef `json:"courses"`
}

// CareerMatchingPayload holds the career-matching agent output, ranked by
// descending similarity with catalog-order ties.
type CareerMatchingPayload struct {
	RankedCourses []RankedCourse `json:"ranked_courses"`
}

// ProjectAdvisorPayload holds the project-advisor agent output.
type ProjectAdvisorPayload struct {
	Projects []ProjectSuggestion `json:"projects"`
}

// Payload is the tagged union of per-variant payload shapes. Exactly one
// field is non-nil on a successful result; all fields are nil on a failed
// one. A struct of optional pointers stands in for a sum type so the merge
// step can switch exhaustively without reflection.
type Payload struct {
	JobMarket      *JobMarketPayload      `json:"job_market,omitempty"`
	CourseCatalog  *CourseCatalogPayload  `json:"course_catalog,omitempty"`
	CareerMatching *CareerMatchingPayload `json:"career_matching,omitempty"`
	ProjectAdvisor *ProjectAdvisorPayload `json:"project_advisor,omitempty"`
}

// Empty reports whether no variant is populated.
func (p Payload) Empty() bool {
	return p.JobMarket == nil && p.CourseCatalog == nil &&
		p.CareerMatching == nil && p.ProjectAdvisor == nil
}

// AgentResult is the uniform envelope produced by every agent invocation.
// Invariants: StatusFailed implies an empty Payload and a non-nil Err;
// StatusOK implies a nil Err.
type AgentResult struct {
	AgentName string     `json:"agent_name"`
	Status    Status     `json:"status"`
	Payload   Payload    `json:"payload"`
	Err       *ErrorInfo `json:"error,omitempty"`
	LatencyMS int64      `json:"latency_ms"`
}

// OKResult builds a successful result for an agent.
func OKResult(agentName string, payload Payload, latency time.Duration) AgentResult {
	return AgentResult{
		AgentName: agentName,
		Status:    StatusOK,
		Payload:   payload,
		LatencyMS: latency.Milliseconds(),
	}
}

// PartialResult builds a usable-but-degraded result carrying both a payload
// and the error that prevented full completion.
func PartialResult(agentName string, payload Payload, kind ErrorKind, msg string, latency time.Duration) AgentResult {
	return AgentResult{
		AgentName: agentName,
		Status:    StatusPartial,
		Payload:   payload,
		Err:       &ErrorInfo{Kind: kind, Message: msg},
		LatencyMS: latency.Milliseconds(),
	}
}

// FailedResult builds a failed result with an empty payload.
func FailedResult(agentName string, kind ErrorKind, msg string, latency time.Duration) AgentResult {
	return AgentResult{
		AgentName: agentName,
		Status:    StatusFailed,
		Err:       &ErrorInfo{Kind: kind, Message: msg},
		LatencyMS: latency.Milliseconds(),
	}
}

// Valid checks the envelope invariants. It is used by tests and by the
// orchestrator's debug assertions, never to reject results at runtime.
func (r AgentResult) Valid() bool {
	switch r.Status {
	case StatusOK:
		return r.Err == nil
	case StatusFailed:
		return r.Err != nil && r.Payload.Empty()
	case StatusPartial:
		return r.Err != nil
	default:
		return false
	}
}
