package core

// CourseRef identifies a single catalog course in agent payloads. Code keeps
// the catalog form "PREFIX NUMBER" (e.g. "BUAN 6320").
type CourseRef struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Course is a full catalog entry. Skills holds the skill tokens taught by the
// course, extracted once when the catalog table is built.
type Course struct {
	Prefix      string       `json:"prefix"`
	Number      int          `json:"number"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Skills      []string     `json:"skills"`
	Level       StudentLevel `json:"level"`
}

// Code returns the catalog form "PREFIX NUMBER".
func (c Course) Code() string {
	return c.Prefix + " " + itoa(c.Number)
}

// Ref returns the payload reference for this course.
func (c Course) Ref() CourseRef {
	return CourseRef{Code: c.Code(), Title: c.Title}
}

// itoa avoids importing strconv into every caller of Course.Code; course
// numbers are always positive four-digit values.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// JobPosting is one fetched job listing after skill extraction.
type JobPosting struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary,omitempty"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Source      string   `json:"source"`
}

// RankedCourse pairs a course reference with its similarity score in [0,1].
type RankedCourse struct {
	Course CourseRef `json:"course"`
	Score  float64   `json:"score"`
}

// ProjectSuggestion is one portfolio project proposed for an uncovered skill.
type ProjectSuggestion struct {
	Skill       string `json:"skill"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
