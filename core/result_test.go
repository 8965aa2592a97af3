package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFailedResultInvariants(t *testing.T) {
	r := FailedResult(AgentJobMarket, KindFetch, "connection refused", 120*time.Millisecond)

	assert.Equal(t, StatusFailed, r.Status)
	assert.True(t, r.Payload.Empty())
	assert.NotNil(t, r.Err)
	assert.Equal(t, KindFetch, r.Err.Kind)
	assert.EqualValues(t, 120, r.LatencyMS)
	assert.True(t, r.Valid())
}

func TestOKResultInvariants(t *testing.T) {
	p := Payload{JobMarket: &JobMarketPayload{Skills: []string{"Python"}, PostingCount: 3}}
	r := OKResult(AgentJobMarket, p, time.Second)

	assert.Equal(t, StatusOK, r.Status)
	assert.Nil(t, r.Err)
	assert.False(t, r.Payload.Empty())
	assert.True(t, r.Valid())
}

func TestPartialResultKeepsPayloadAndError(t *testing.T) {
	p := Payload{JobMarket: &JobMarketPayload{Skills: []string{"SQL"}, PostingCount: 1}}
	r := PartialResult(AgentJobMarket, p, KindCompletion, "model unavailable", 0)

	assert.Equal(t, StatusPartial, r.Status)
	assert.NotNil(t, r.Err)
	assert.False(t, r.Payload.Empty())
	assert.True(t, r.Valid())
}

func TestValidRejectsMalformedEnvelopes(t *testing.T) {
	// ok with error set
	bad := AgentResult{AgentName: AgentJobMarket, Status: StatusOK, Err: &ErrorInfo{Kind: KindFetch}}
	assert.False(t, bad.Valid())

	// failed with payload
	bad = AgentResult{
		AgentName: AgentJobMarket,
		Status:    StatusFailed,
		Err:       &ErrorInfo{Kind: KindFetch},
		Payload:   Payload{JobMarket: &JobMarketPayload{}},
	}
	assert.False(t, bad.Valid())

	// failed without error
	bad = AgentResult{AgentName: AgentJobMarket, Status: StatusFailed}
	assert.False(t, bad.Valid())
}

func TestComputeOverall(t *testing.T) {
	ok := AgentResult{Status: StatusOK}
	failed := AgentResult{Status: StatusFailed, Err: &ErrorInfo{Kind: KindTimeout}}
	partial := AgentResult{Status: StatusPartial, Err: &ErrorInfo{Kind: KindCompletion}}

	tests := []struct {
		name    string
		results []AgentResult
		want    OverallStatus
	}{
		{"all ok", []AgentResult{ok, ok, ok, ok}, OverallAllOK},
		{"all failed", []AgentResult{failed, failed, failed, failed}, OverallFailed},
		{"mixed", []AgentResult{ok, failed, ok, failed}, OverallDegraded},
		{"partial counts as degraded", []AgentResult{partial, partial, partial, partial}, OverallDegraded},
		{"single failure degrades", []AgentResult{ok, ok, ok, failed}, OverallDegraded},
		{"empty", nil, OverallFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOverall(tt.results))
		})
	}
}

func TestResultFor(t *testing.T) {
	u := UnifiedResponse{Results: []AgentResult{
		{AgentName: AgentJobMarket, Status: StatusOK},
		{AgentName: AgentCourseCatalog, Status: StatusFailed, Err: &ErrorInfo{Kind: KindFetch}},
	}}

	r, ok := u.ResultFor(AgentCourseCatalog)
	assert.True(t, ok)
	assert.Equal(t, StatusFailed, r.Status)

	_, ok = u.ResultFor(AgentProjectAdvisor)
	assert.False(t, ok)
}
