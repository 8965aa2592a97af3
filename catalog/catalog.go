// Package catalog provides the course table the guidance agents draw from:
// a built-in UTD-style catalog, an optional JSON feed, per-major course
// prefix allow-lists and the graduate/undergraduate split. A Store caches
// the fetched table behind an atomic snapshot swap so concurrent requests
// never observe a partially updated catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/careercompass/compass/core"
	"github.com/careercompass/compass/jobs"
)

// graduateNumberThreshold splits course numbers into levels: 5000 and above
// is graduate.
const graduateNumberThreshold = 5000

// majorPrefixes maps a lowercased major to the course prefixes its students
// may take. Majors outside this table fall back to prefix-unfiltered
// results.
var majorPrefixes = map[string][]string{
	"business analytics":                    {"BUAN", "MIS", "OPRE"},
	"information technology and management": {"MIS", "IMS", "OPRE", "FIN", "ACCT", "MKT"},
	"computer science":                      {"CS", "SE", "CE"},
	"software engineering":                  {"SE", "CS", "CE"},
	"electrical engineering":                {"EE", "CE", "CS"},
	"cybersecurity":                         {"CS", "CE"},
	"management information systems":        {"MIS", "BUAN"},
	"accounting":                            {"ACCT", "OPRE"},
	"finance":                               {"FIN", "OPRE"},
	"marketing":                             {"MKT", "OPRE"},
	"supply chain management":               {"SCM", "OPRE", "SYSM"},
	"data science":                          {"CS", "STAT", "MATH", "BUAN"},
	"statistics":                            {"STAT", "MATH"},
}

// MajorPrefixes returns the allowed course prefixes for a major and whether
// the major is known.
func MajorPrefixes(major string) ([]string, bool) {
	p, ok := majorPrefixes[strings.ToLower(strings.TrimSpace(major))]
	if !ok {
		return nil, false
	}
	out := make([]string, len(p))
	copy(out, p)
	return out, true
}

// LevelOf classifies a course number.
func LevelOf(number int) core.StudentLevel {
	if number >= graduateNumberThreshold {
		return core.LevelGraduate
	}
	return core.LevelUndergraduate
}

// Filter applies the exact-match predicates from the catalog rules: course
// prefix must be on the major's allow-list (when the major is known) and
// the course level must equal the student level. Catalog order is
// preserved.
func Filter(courses []core.Course, major string, level core.StudentLevel) []core.Course {
	prefixes, known := MajorPrefixes(major)
	allowed := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		allowed[p] = true
	}

	var out []core.Course
	for _, c := range courses {
		if c.Level != level {
			continue
		}
		if known && !allowed[c.Prefix] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Source yields the full course table.
type Source interface {
	Fetch(ctx context.Context) ([]core.Course, error)
}

// StaticSource serves the built-in course table.
type StaticSource struct{}

// NewStaticSource constructs a source over the built-in table.
func NewStaticSource() *StaticSource { return &StaticSource{} }

// Fetch implements Source.
func (*StaticSource) Fetch(context.Context) ([]core.Course, error) {
	out := make([]core.Course, len(builtinCourses))
	copy(out, builtinCourses)
	return out, nil
}

// courseEntry is the wire shape of one feed entry.
type courseEntry struct {
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// HTTPSource fetches the course table from a JSON feed returning an array
// of {code, title, description, skills} objects. Level and prefix are
// derived from the code; skills fall back to keyword extraction over the
// description when the feed omits them.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource constructs a source for the given feed URL.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]core.Course, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	var raw []courseEntry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]core.Course, 0, len(raw))
	for _, e := range raw {
		prefix, number, err := ParseCode(e.Code)
		if err != nil {
			// Skip entries with malformed codes rather than failing the
			// whole table.
			continue
		}
		skills := e.Skills
		if len(skills) == 0 {
			skills = jobs.ExtractSkills(e.Description)
		}
		out = append(out, core.Course{
			Prefix:      prefix,
			Number:      number,
			Title:       e.Title,
			Description: e.Description,
			Skills:      skills,
			Level:       LevelOf(number),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("decode catalog: no parsable courses")
	}
	return out, nil
}

// ParseCode splits a catalog code like "BUAN 6320" into prefix and number.
func ParseCode(code string) (string, int, error) {
	fields := strings.Fields(strings.TrimSpace(code))
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("malformed course code %q", code)
	}
	prefix := strings.ToUpper(fields[0])
	number := 0
	for _, r := range fields[1] {
		if r < '0' || r > '9' {
			return "", 0, fmt.Errorf("malformed course number in %q", code)
		}
		number = number*10 + int(r-'0')
	}
	if number == 0 {
		return "", 0, fmt.Errorf("malformed course number in %q", code)
	}
	return prefix, number, nil
}
