package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/careercompass/compass/core"
)

// snapshot is one complete, immutable catalog version. Readers always see
// either the previous or the next snapshot, never a half-written one.
type snapshot struct {
	courses   []core.Course
	fetchedAt time.Time
}

// Store caches the course table across requests. Population is lazy; the
// cached snapshot is replaced wholesale via atomic pointer swap when the
// TTL elapses, and concurrent cache misses are collapsed into a single
// upstream fetch.
type Store struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	snap  atomic.Pointer[snapshot]
	group singleflight.Group
}

// StoreOptions configure a Store.
type StoreOptions struct {
	// TTL bounds snapshot freshness; zero means cache forever until
	// Invalidate.
	TTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewStore constructs a Store over the given source.
func NewStore(source Source, optFns ...func(o *StoreOptions)) *Store {
	opts := StoreOptions{TTL: time.Hour, Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{source: source, ttl: opts.TTL, now: opts.Now}
}

// Courses returns the current course table, fetching and caching it when
// the snapshot is missing or stale. A stale snapshot is still served if the
// refresh fails, so a flaky upstream degrades to old data instead of
// errors.
func (s *Store) Courses(ctx context.Context) ([]core.Course, error) {
	if snap := s.snap.Load(); snap != nil && !s.stale(snap) {
		return snap.courses, nil
	}

	v, err, _ := s.group.Do("catalog", func() (any, error) {
		// Another waiter may have refreshed while we queued.
		if snap := s.snap.Load(); snap != nil && !s.stale(snap) {
			return snap.courses, nil
		}
		courses, err := s.source.Fetch(ctx)
		if err != nil {
			if snap := s.snap.Load(); snap != nil {
				return snap.courses, nil
			}
			return nil, err
		}
		s.snap.Store(&snapshot{courses: courses, fetchedAt: s.now()})
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]core.Course), nil
}

// Invalidate drops the cached snapshot so the next read refetches.
func (s *Store) Invalidate() { s.snap.Store(nil) }

func (s *Store) stale(snap *snapshot) bool {
	return s.ttl > 0 && s.now().Sub(snap.fetchedAt) > s.ttl
}
