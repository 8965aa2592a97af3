// Package server exposes the guidance service over HTTP: the guidance
// endpoint itself plus health, session retrieval, and metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/logging"
	"github.com/careercompass/compass/session"
)

const unavailable = "data unavailable"

// Guide processes one career guidance query. *guidance.Orchestrator
// satisfies it; tests substitute canned implementations.
type Guide interface {
	Process(ctx context.Context, q core.Query) core.UnifiedResponse
}

// Options configures a Server.
type Options struct {
	Logger   logging.Logger
	Metrics  *Metrics
	Sessions session.Store
}

// Server routes HTTP traffic to the orchestrator and session store.
type Server struct {
	guide    Guide
	sessions session.Store
	logger   logging.Logger
	metrics  *Metrics
}

// New builds the server and its handler chain.
func New(guide Guide, optFns ...func(o *Options)) *Server {
	opts := Options{
		Logger:   logging.NoOpLogger{},
		Metrics:  NewMetrics(),
		Sessions: session.NewInMemoryStore(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{
		guide:    guide,
		sessions: opts.Sessions,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

// Handler returns the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/career-guidance", s.handleGuidance)
	mux.HandleFunc("/api/sessions/", s.handleSession)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return chain(mux,
		withObservability(s.logger, s.metrics),
		withRequestID,
		withRecovery(s.logger),
	)
}

type guidanceRequest struct {
	Query       string `json:"query"`
	Major       string `json:"major"`
	StudentType string `json:"studentType"`
	CareerGoal  string `json:"careerGoal"`
	SessionID   string `json:"sessionId,omitempty"`
}

// guidanceResponse is the wire shape: natural-language text per
// section, with the structured per-agent results carried alongside so
// clients can inspect statuses and error kinds.
type guidanceResponse struct {
	SessionID              string             `json:"session_id"`
	Unified                string             `json:"unified_response"`
	JobMarketInsights      string             `json:"job_market_insights"`
	CourseRecommendations  string             `json:"course_recommendations"`
	CareerMatchingAnalysis string             `json:"career_matching_analysis"`
	ProjectSuggestions     string             `json:"project_suggestions"`
	Results                []core.AgentResult `json:"results"`
	OverallStatus          core.OverallStatus `json:"overall_status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req guidanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if strings.TrimSpace(req.CareerGoal) == "" {
		writeError(w, http.StatusBadRequest, "careerGoal is required")
		return
	}

	q := core.NewQuery(req.Query, req.Major, req.StudentType, req.CareerGoal, req.SessionID)

	resp := s.guide.Process(r.Context(), q)
	s.metrics.ObserveResponse(resp)

	if err := s.sessions.Append(q.SessionID, q, resp); err != nil {
		s.logger.Warn("session append failed", "session_id", q.SessionID, "error", err.Error())
	}

	writeJSON(w, http.StatusOK, guidanceResponse{
		SessionID:              q.SessionID,
		Unified:                renderUnified(resp),
		JobMarketInsights:      renderJobMarket(resp),
		CourseRecommendations:  renderCourseCatalog(resp),
		CareerMatchingAnalysis: renderCareerMatching(resp),
		ProjectSuggestions:     renderProjectAdvisor(resp),
		Results:                resp.Results,
		OverallStatus:          resp.Overall,
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type healthResponse struct {
	Status string          `json:"status"`
	Agents map[string]bool `json:"agents"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	agents := make(map[string]bool, len(core.AgentOrder))
	for _, name := range core.AgentOrder {
		agents[name] = true
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Agents: agents})
}

// renderUnified produces the top-level guidance text: the synthesized
// narrative when available, otherwise the sections stitched together.
func renderUnified(resp core.UnifiedResponse) string {
	if resp.Narrative != "" {
		return resp.Narrative
	}
	sections := []string{
		renderJobMarket(resp),
		renderCourseCatalog(resp),
		renderCareerMatching(resp),
		renderProjectAdvisor(resp),
	}
	var kept []string
	for _, s := range sections {
		if s != unavailable {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return unavailable
	}
	return strings.Join(kept, "\n\n")
}

func renderJobMarket(resp core.UnifiedResponse) string {
	res, ok := resp.ResultFor(core.AgentJobMarket)
	if !ok || res.Payload.JobMarket == nil {
		return unavailable
	}
	p := res.Payload.JobMarket
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyzed %d job postings. Skills in demand: %s.", p.PostingCount, strings.Join(p.Skills, ", "))
	if p.Summary != "" {
		sb.WriteString("\n\n")
		sb.WriteString(p.Summary)
	}
	return sb.String()
}

func renderCourseCatalog(resp core.UnifiedResponse) string {
	res, ok := resp.ResultFor(core.AgentCourseCatalog)
	if !ok || res.Payload.CourseCatalog == nil {
		return unavailable
	}
	courses := res.Payload.CourseCatalog.Courses
	if len(courses) == 0 {
		return "No matching courses found for this major and level."
	}
	var sb strings.Builder
	sb.WriteString("Recommended courses:\n")
	for _, c := range courses {
		fmt.Fprintf(&sb, "- %s: %s\n", c.Code, c.Title)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderCareerMatching(resp core.UnifiedResponse) string {
	res, ok := resp.ResultFor(core.AgentCareerMatching)
	if !ok || res.Payload.CareerMatching == nil {
		return unavailable
	}
	ranked := res.Payload.CareerMatching.RankedCourses
	if len(ranked) == 0 {
		return "No courses to rank for this career goal."
	}
	var sb strings.Builder
	sb.WriteString("Courses ranked by job market alignment:\n")
	for i, rc := range ranked {
		fmt.Fprintf(&sb, "%d. %s (%s) score %.2f\n", i+1, rc.Course.Code, rc.Course.Title, rc.Score)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderProjectAdvisor(resp core.UnifiedResponse) string {
	res, ok := resp.ResultFor(core.AgentProjectAdvisor)
	if !ok || res.Payload.ProjectAdvisor == nil {
		return unavailable
	}
	projects := res.Payload.ProjectAdvisor.Projects
	if len(projects) == 0 {
		return "Your top-ranked courses already cover the in-demand skills."
	}
	var sb strings.Builder
	sb.WriteString("Suggested projects to close skill gaps:\n")
	for _, p := range projects {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", p.Title, p.Skill, p.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
