package agent

import (
	"fmt"
	"strings"

	"github.com/careercompass/compass/core"
)

func jobMarketPrompt(q core.Query, skills []string, postingCount int) string {
	var sb strings.Builder
	sb.WriteString("You are a job market analyst. Summarize the current demand for the following skills in two or three sentences.\n\n")
	fmt.Fprintf(&sb, "Career goal: %s\n", q.CareerGoal)
	fmt.Fprintf(&sb, "Postings analyzed: %d\n", postingCount)
	fmt.Fprintf(&sb, "Skills in demand: %s\n", strings.Join(skills, ", "))
	sb.WriteString("\nFocus on which skills appear most often and what that implies for a student preparing for this career.")
	return sb.String()
}

func projectPrompt(q core.Query, skill string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a project advisor for a %s student majoring in %s.\n", q.Level, q.Major)
	fmt.Fprintf(&sb, "The student wants to become a %s but their available courses do not cover the skill %q.\n", q.CareerGoal, skill)
	sb.WriteString("Suggest one concrete hands-on project that builds this skill. Describe it in two or three sentences.")
	return sb.String()
}
