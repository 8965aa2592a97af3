package core

// OverallStatus summarizes a UnifiedResponse across all agents.
type OverallStatus string

const (
	// OverallAllOK means every agent succeeded.
	OverallAllOK OverallStatus = "all_ok"
	// OverallDegraded means some but not all agents failed.
	OverallDegraded OverallStatus = "degraded"
	// OverallFailed means every agent failed.
	OverallFailed OverallStatus = "failed"
)

// UnifiedResponse aggregates the four agent results for one request.
// Results is always ordered per AgentOrder regardless of completion order.
// Narrative is the optional cross-agent synthesis; empty means unset.
// The value is immutable once returned by the orchestrator.
type UnifiedResponse struct {
	SessionID string        `json:"session_id"`
	Results   []AgentResult `json:"results"`
	Narrative string        `json:"narrative,omitempty"`
	Overall   OverallStatus `json:"overall_status"`
}

// ResultFor returns the result for the named agent, or a zero AgentResult
// and false when absent.
func (u UnifiedResponse) ResultFor(agentName string) (AgentResult, bool) {
	for _, r := range u.Results {
		if r.AgentName == agentName {
			return r, true
		}
	}
	return AgentResult{}, false
}

// ComputeOverall derives the overall status from a result set: all_ok when
// every agent is ok, failed when every agent is failed, degraded otherwise.
// Partial results count as degraded, not failed.
func ComputeOverall(results []AgentResult) OverallStatus {
	if len(results) == 0 {
		return OverallFailed
	}
	allOK, allFailed := true, true
	for _, r := range results {
		if r.Status != StatusOK {
			allOK = false
		}
		if r.Status != StatusFailed {
			allFailed = false
		}
	}
	switch {
	case allOK:
		return OverallAllOK
	case allFailed:
		return OverallFailed
	default:
		return OverallDegraded
	}
}
