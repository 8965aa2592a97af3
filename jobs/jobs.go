// Package jobs fetches job postings for a target role and extracts required
// skill tokens from their descriptions. Skill extraction is a keyword
// presence check against a fixed vocabulary, deliberately not NLP: postings
// are short and the downstream matcher only needs overlapping tokens.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/careercompass/compass/core"
)

// Source yields postings for a career goal. Implementations must honor
// context cancellation and return an error rather than block past their
// transport timeout.
type Source interface {
	Fetch(ctx context.Context, careerGoal string) ([]core.JobPosting, error)
}

// vocabulary is the fixed skill keyword list shared by posting analysis and
// course skill tagging. Order matters: extraction results keep this order so
// downstream ranking is deterministic.
var vocabulary = []string{
	"Python", "R", "SQL", "Java", "Scala", "JavaScript", "TypeScript",
	"Machine Learning", "Deep Learning", "Artificial Intelligence",
	"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "Pandas", "NumPy",
	"Data Analysis", "Data Visualization", "Tableau", "Power BI",
	"Statistics", "Statistical Analysis", "A/B Testing", "Regression",
	"Classification", "Clustering", "NLP", "Natural Language Processing",
	"Computer Vision", "Big Data", "Hadoop", "Spark", "Kafka",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "CI/CD", "MLOps",
	"Data Engineering", "ETL", "Data Pipeline", "Data Warehouse",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Cloud Computing",
	"Serverless", "Redshift", "Agile", "Project Management", "Leadership",
}

// Vocabulary returns a copy of the skill keyword list.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// ExtractSkills returns the vocabulary skills present in text, in vocabulary
// order, deduplicated. Matching is a case-insensitive substring check.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range vocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

// ExtractSkillsAll aggregates the skills of many postings, in vocabulary
// order, deduplicated.
func ExtractSkillsAll(postings []core.JobPosting) []string {
	present := make(map[string]bool)
	for _, p := range postings {
		for _, s := range p.Skills {
			present[s] = true
		}
	}
	var out []string
	for _, skill := range vocabulary {
		if present[skill] {
			out = append(out, skill)
		}
	}
	return out
}

// posting is the wire shape of one feed entry.
type posting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
}

// HTTPSource fetches postings from a JSON feed. The feed is expected to
// return an array of {title, company, location, salary, description}
// objects for a ?q=<role> query.
type HTTPSource struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// HTTPSourceOptions configure an HTTPSource.
type HTTPSourceOptions struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPSource constructs a source for the given feed URL.
func NewHTTPSource(baseURL string, optFns ...func(o *HTTPSourceOptions)) *HTTPSource {
	opts := HTTPSourceOptions{
		Client:    http.DefaultClient,
		UserAgent: "compass/1.0",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &HTTPSource{baseURL: baseURL, client: opts.Client, userAgent: opts.UserAgent}
}

// Fetch implements Source. Network and HTTP-status failures surface as
// errors; decoding failures do too, so the caller can classify them.
func (s *HTTPSource) Fetch(ctx context.Context, careerGoal string) ([]core.JobPosting, error) {
	u := s.baseURL + "?q=" + url.QueryEscape(careerGoal)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch postings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch postings: unexpected status %d", resp.StatusCode)
	}

	var raw []posting
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	out := make([]core.JobPosting, 0, len(raw))
	for _, p := range raw {
		out = append(out, core.JobPosting{
			Title:       p.Title,
			Company:     p.Company,
			Location:    p.Location,
			Salary:      p.Salary,
			Description: p.Description,
			Skills:      ExtractSkills(p.Description),
			Source:      s.baseURL,
		})
	}
	return out, nil
}

// DecodeError marks a response that was received but could not be
// interpreted, so agents can classify it as a parse failure rather than a
// fetch failure.
type DecodeError struct{ Err error }

// Error implements error.
func (e *DecodeError) Error() string { return fmt.Sprintf("decode postings: %v", e.Err) }

// Unwrap exposes the underlying decode error.
func (e *DecodeError) Unwrap() error { return e.Err }

// StaticSource serves a fixed posting set, used for demos and tests when no
// feed is configured.
type StaticSource struct {
	postings []core.JobPosting
}

// NewStaticSource constructs a source over the given postings. Skills are
// extracted from descriptions when absent.
func NewStaticSource(postings []core.JobPosting) *StaticSource {
	for i := range postings {
		if len(postings[i].Skills) == 0 {
			postings[i].Skills = ExtractSkills(postings[i].Description)
		}
	}
	return &StaticSource{postings: postings}
}

// NewSampleSource returns a StaticSource with built-in data-science
// postings.
func NewSampleSource() *StaticSource {
	return NewStaticSource([]core.JobPosting{
		{
			Title:       "Senior Data Scientist",
			Company:     "Tech Corp",
			Location:    "Dallas, TX",
			Salary:      "120000-140000",
			Description: "Build machine learning models in Python, query warehouses with SQL, deploy on AWS.",
			Source:      "sample",
		},
		{
			Title:       "Data Analyst",
			Company:     "Retail Insights",
			Location:    "Austin, TX",
			Salary:      "75000-90000",
			Description: "Data analysis and data visualization with Tableau, statistics and A/B testing.",
			Source:      "sample",
		},
		{
			Title:       "Machine Learning Engineer",
			Company:     "Streamline AI",
			Location:    "Remote",
			Description: "TensorFlow and PyTorch pipelines, Docker, Kubernetes, MLOps on GCP.",
			Source:      "sample",
		},
	})
}

// Fetch implements Source; the career goal filters postings by title
// keyword, falling back to the full set on no match.
func (s *StaticSource) Fetch(_ context.Context, careerGoal string) ([]core.JobPosting, error) {
	goal := strings.ToLower(strings.TrimSpace(careerGoal))
	if goal == "" {
		return append([]core.JobPosting(nil), s.postings...), nil
	}
	var out []core.JobPosting
	for _, p := range s.postings {
		if strings.Contains(strings.ToLower(p.Title), goal) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]core.JobPosting(nil), s.postings...), nil
	}
	return out, nil
}
