package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careercompass/compass/core"
)

func TestMajorPrefixes(t *testing.T) {
	p, ok := MajorPrefixes("Business Analytics")
	require.True(t, ok)
	assert.Equal(t, []string{"BUAN", "MIS", "OPRE"}, p)

	_, ok = MajorPrefixes("underwater basket weaving")
	assert.False(t, ok)
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, core.LevelUndergraduate, LevelOf(4375))
	assert.Equal(t, core.LevelGraduate, LevelOf(5000))
	assert.Equal(t, core.LevelGraduate, LevelOf(6320))
}

func TestFilterByMajorAndLevel(t *testing.T) {
	courses, err := NewStaticSource().Fetch(context.Background())
	require.NoError(t, err)

	filtered := Filter(courses, "Business Analytics", core.LevelGraduate)
	require.NotEmpty(t, filtered)
	for _, c := range filtered {
		assert.Contains(t, []string{"BUAN", "MIS", "OPRE"}, c.Prefix)
		assert.Equal(t, core.LevelGraduate, c.Level)
		assert.GreaterOrEqual(t, c.Number, 5000)
	}
}

func TestFilterUnknownMajorKeepsAllPrefixes(t *testing.T) {
	courses := []core.Course{
		{Prefix: "CS", Number: 6375, Level: core.LevelGraduate},
		{Prefix: "BUAN", Number: 6320, Level: core.LevelGraduate},
		{Prefix: "CS", Number: 4375, Level: core.LevelUndergraduate},
	}
	filtered := Filter(courses, "philosophy", core.LevelGraduate)
	assert.Len(t, filtered, 2)
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	courses, err := NewStaticSource().Fetch(context.Background())
	require.NoError(t, err)

	filtered := Filter(courses, "Business Analytics", core.LevelGraduate)
	for i := 1; i < len(filtered); i++ {
		assert.True(t, indexOf(courses, filtered[i-1]) < indexOf(courses, filtered[i]))
	}
}

func indexOf(courses []core.Course, c core.Course) int {
	for i, x := range courses {
		if x.Code() == c.Code() {
			return i
		}
	}
	return -1
}

func TestParseCode(t *testing.T) {
	prefix, number, err := ParseCode("buan 6320")
	require.NoError(t, err)
	assert.Equal(t, "BUAN", prefix)
	assert.Equal(t, 6320, number)

	for _, bad := range []string{"", "BUAN", "BUAN 63x0", "BUAN 6320 X"} {
		_, _, err := ParseCode(bad)
		assert.Error(t, err, "code %q", bad)
	}
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"code":"BUAN 6320","title":"Database Foundations","description":"SQL for analytics"},
			{"code":"bogus","title":"skipped"},
			{"code":"CS 4375","title":"Intro ML","skills":["Machine Learning"]}
		]`))
	}))
	defer srv.Close()

	courses, err := NewHTTPSource(srv.URL, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "BUAN 6320", courses[0].Code())
	assert.Equal(t, core.LevelGraduate, courses[0].Level)
	assert.Contains(t, courses[0].Skills, "SQL")
	assert.Equal(t, core.LevelUndergraduate, courses[1].Level)
	assert.Equal(t, []string{"Machine Learning"}, courses[1].Skills)
}

// countingSource counts upstream fetches to verify caching behavior.
type countingSource struct {
	mu      sync.Mutex
	fetches int
	courses []core.Course
	err     error
}

func (c *countingSource) Fetch(context.Context) ([]core.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++
	if c.err != nil {
		return nil, c.err
	}
	return c.courses, nil
}

func (c *countingSource) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

func TestStoreCachesSnapshot(t *testing.T) {
	src := &countingSource{courses: []core.Course{{Prefix: "CS", Number: 6375, Level: core.LevelGraduate}}}
	store := NewStore(src)

	for i := 0; i < 5; i++ {
		courses, err := store.Courses(context.Background())
		require.NoError(t, err)
		assert.Len(t, courses, 1)
	}
	assert.Equal(t, 1, src.count())
}

func TestStoreRefreshesAfterTTL(t *testing.T) {
	now := time.Now()
	src := &countingSource{courses: []core.Course{{Prefix: "CS", Number: 6375}}}
	store := NewStore(src, func(o *StoreOptions) {
		o.TTL = time.Minute
		o.Now = func() time.Time { return now }
	})

	_, err := store.Courses(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Courses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.count())
}

func TestStoreServesStaleOnRefreshFailure(t *testing.T) {
	now := time.Now()
	src := &countingSource{courses: []core.Course{{Prefix: "CS", Number: 6375}}}
	store := NewStore(src, func(o *StoreOptions) {
		o.TTL = time.Minute
		o.Now = func() time.Time { return now }
	})

	_, err := store.Courses(context.Background())
	require.NoError(t, err)

	src.mu.Lock()
	src.err = errors.New("upstream down")
	src.mu.Unlock()

	now = now.Add(2 * time.Minute)
	courses, err := store.Courses(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestStoreErrorWithoutSnapshot(t *testing.T) {
	src := &countingSource{err: errors.New("upstream down")}
	store := NewStore(src)

	_, err := store.Courses(context.Background())
	assert.Error(t, err)
}

func TestStoreInvalidate(t *testing.T) {
	src := &countingSource{courses: []core.Course{{Prefix: "CS", Number: 6375}}}
	store := NewStore(src)

	_, err := store.Courses(context.Background())
	require.NoError(t, err)
	store.Invalidate()
	_, err = store.Courses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.count())
}

func TestStoreConcurrentReadersSingleFetch(t *testing.T) {
	src := &countingSource{courses: []core.Course{{Prefix: "CS", Number: 6375}}}
	store := NewStore(src)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Courses(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, src.count())
}
