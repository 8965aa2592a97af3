package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCompleterCannedResponse(t *testing.T) {
	m := NewMockCompleter()
	m.AddResponse("hello", "world")

	out, err := m.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", out)

	out, err = m.Complete(context.Background(), "other")
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: other", out)
	assert.Equal(t, 2, m.Calls())
}

func TestMockCompleterFailureInjection(t *testing.T) {
	m := NewMockCompleter()
	sentinel := errors.New("throttled")
	m.FailWith(sentinel)

	_, err := m.Complete(context.Background(), "hello")
	assert.ErrorIs(t, err, sentinel)

	m.FailWith(nil)
	_, err = m.Complete(context.Background(), "hello")
	assert.NoError(t, err)
}

func TestMockCompleterDelayRespectsContext(t *testing.T) {
	m := NewMockCompleter()
	m.Delay(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := m.Complete(ctx, "hello")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCallLimiter(t *testing.T) {
	m := NewMockCompleter()
	l := NewCallLimiter(m, 2)

	_, err := l.Complete(context.Background(), "a")
	require.NoError(t, err)
	_, err = l.Complete(context.Background(), "b")
	require.NoError(t, err)

	_, err = l.Complete(context.Background(), "c")
	assert.Error(t, err)
	assert.Equal(t, 3, l.Count())
	// The provider must not have seen the rejected call.
	assert.Equal(t, 2, m.Calls())
}

func TestCallLimiterUnlimited(t *testing.T) {
	l := NewCallLimiter(NewMockCompleter(), 0)
	for i := 0; i < 10; i++ {
		_, err := l.Complete(context.Background(), "p")
		require.NoError(t, err)
	}
}

func TestThrottledDisabled(t *testing.T) {
	th := NewThrottled(NewMockCompleter(), 0, 0)
	_, err := th.Complete(context.Background(), "p")
	assert.NoError(t, err)
}

func TestThrottledCancelledContext(t *testing.T) {
	// 1 call per hour with burst 1: the second call must wait and therefore
	// observe the cancelled context.
	th := NewThrottled(NewMockCompleter(), 1.0/3600, 1)

	_, err := th.Complete(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = th.Complete(ctx, "second")
	assert.Error(t, err)
}
