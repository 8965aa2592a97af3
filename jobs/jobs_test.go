package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careercompass/compass/core"
)

func TestExtractSkills(t *testing.T) {
	text := "We need strong python and SQL skills, plus Machine Learning experience on AWS."
	skills := ExtractSkills(text)

	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "SQL")
	assert.Contains(t, skills, "Machine Learning")
	assert.Contains(t, skills, "AWS")
	assert.NotContains(t, skills, "Tableau")
}

func TestExtractSkillsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractSkills(""))
	assert.Empty(t, ExtractSkills("nothing relevant here"))
}

func TestExtractSkillsDeterministicOrder(t *testing.T) {
	// Order follows the vocabulary, not appearance order in the text.
	skills := ExtractSkills("SQL before Python in this sentence")
	assert.Equal(t, []string{"Python", "SQL"}, skills)
}

func TestExtractSkillsAll(t *testing.T) {
	postings := []core.JobPosting{
		{Skills: []string{"SQL", "Python"}},
		{Skills: []string{"Python", "AWS"}},
	}
	assert.Equal(t, []string{"Python", "SQL", "AWS"}, ExtractSkillsAll(postings))
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Data Scientist", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"title":"Data Scientist","company":"Acme","location":"Dallas","description":"Python and SQL daily"},
			{"title":"ML Engineer","company":"Beta","location":"Remote","description":"TensorFlow pipelines"}
		]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL)
	postings, err := src.Fetch(context.Background(), "Data Scientist")
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, []string{"Python", "SQL"}, postings[0].Skills)
	assert.Equal(t, "Acme", postings[0].Company)
}

func TestHTTPSourceFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background(), "x")
	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestHTTPSourceFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background(), "x")
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestHTTPSourceFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTPSource(srv.URL).Fetch(ctx, "x")
	assert.Error(t, err)
}

func TestStaticSourceFiltersByGoal(t *testing.T) {
	src := NewSampleSource()

	postings, err := src.Fetch(context.Background(), "data scientist")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Senior Data Scientist", postings[0].Title)

	// Unknown goal falls back to the whole set.
	postings, err = src.Fetch(context.Background(), "astronaut")
	require.NoError(t, err)
	assert.Len(t, postings, 3)
}

func TestStaticSourceExtractsSkills(t *testing.T) {
	postings, err := NewSampleSource().Fetch(context.Background(), "")
	require.NoError(t, err)
	for _, p := range postings {
		assert.NotEmpty(t, p.Skills, "posting %q should have extracted skills", p.Title)
	}
}
