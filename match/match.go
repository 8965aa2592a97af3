// Package match scores how well a course's taught skills cover a job's
// required skills. Free-text skill descriptions are tokenized into
// term-frequency vectors and compared with cosine similarity; ranking is a
// stable descending sort so equal scores keep catalog order.
package match

import (
	"math"
	"sort"
	"strings"

	"github.com/careercompass/compass/core"
)

// Vector is a sparse term-frequency vector.
type Vector map[string]float64

// Tokenize lowercases text and splits it into alphanumeric terms. "+" and
// "#" are kept inside terms so "c++" and "c#" survive as single tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '+' || r == '#':
			return false
		default:
			return true
		}
	})
}

// Vectorize counts term occurrences.
func Vectorize(terms []string) Vector {
	v := make(Vector, len(terms))
	for _, t := range terms {
		v[t]++
	}
	return v
}

// VectorizeText tokenizes and vectorizes in one step.
func VectorizeText(text string) Vector {
	return Vectorize(Tokenize(text))
}

// Cosine returns the cosine similarity of two term-frequency vectors in
// [0,1]. When either vector has zero norm (no terms, or no terms at all in
// common with any vocabulary) the similarity is defined as exactly 0.0,
// never NaN.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	var dot, normA, normB float64
	for t, x := range a {
		normA += x * x
		if y, ok := b[t]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		normB += y * y
	}
	if normA == 0 || normB == 0 || dot == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RankCourses scores every course against the job's required skills and
// returns them ranked descending by similarity. Ties keep the input
// (catalog) order.
func RankCourses(jobSkills []string, courses []core.Course) []core.RankedCourse {
	jobVec := VectorizeText(strings.Join(jobSkills, " "))

	ranked := make([]core.RankedCourse, 0, len(courses))
	for _, c := range courses {
		courseVec := VectorizeText(strings.Join(c.Skills, " "))
		ranked = append(ranked, core.RankedCourse{
			Course: c.Ref(),
			Score:  Cosine(jobVec, courseVec),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// UncoveredSkills returns the required skills not taught by any of the given
// courses, preserving the required-skill order.
func UncoveredSkills(required []string, courses []core.Course) []string {
	covered := make(map[string]bool)
	for _, c := range courses {
		for _, s := range c.Skills {
			covered[strings.ToLower(s)] = true
		}
	}
	var out []string
	for _, s := range required {
		if !covered[strings.ToLower(s)] {
			out = append(out, s)
		}
	}
	return out
}
