package core

import (
	"strings"

	"github.com/google/uuid"
)

// StudentLevel distinguishes undergraduate from graduate study. It selects
// both the catalog slice and the course-number filter applied by the
// course-catalog agent.
type StudentLevel string

const (
	// LevelUndergraduate selects courses numbered below 5000.
	LevelUndergraduate StudentLevel = "undergraduate"
	// LevelGraduate selects courses numbered 5000 and above.
	LevelGraduate StudentLevel = "graduate"
)

// ParseStudentLevel normalizes free-form user input ("grad", "Graduate",
// "masters") into a StudentLevel. Unrecognized input defaults to
// undergraduate rather than failing; the agents treat the level as a filter,
// not a credential.
func ParseStudentLevel(s string) StudentLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "graduate", "grad", "masters", "master", "phd", "doctoral":
		return LevelGraduate
	default:
		return LevelUndergraduate
	}
}

// Query is the immutable per-request input shared read-only by all agents.
// It is created once by the server layer and never mutated; agents receive
// it by value.
type Query struct {
	RawText    string       `json:"raw_text"`
	Major      string       `json:"major"`
	Level      StudentLevel `json:"student_level"`
	CareerGoal string       `json:"career_goal"`
	SessionID  string       `json:"session_id"`
}

// NewQuery builds a Query from raw request fields, normalizing the student
// level and assigning a fresh session ID when none was supplied.
func NewQuery(rawText, major, studentType, careerGoal, sessionID string) Query {
	if sessionID == "" {
		sessionID = NewID()
	}
	return Query{
		RawText:    strings.TrimSpace(rawText),
		Major:      strings.TrimSpace(major),
		Level:      ParseStudentLevel(studentType),
		CareerGoal: strings.TrimSpace(careerGoal),
		SessionID:  sessionID,
	}
}

// NewID generates a unique identifier for sessions and requests.
func NewID() string { return uuid.NewString() }
