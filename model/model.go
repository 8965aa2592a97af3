package model

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Info contains metadata about a completion provider implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "bedrock", "anthropic", "openai", "mock"
}

// Completer is the minimal interface the agents require from a hosted
// text-completion service: one prompt in, one generated text out. All
// failure modes (network, rate limit, unusable output) surface as errors.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)

	// Info returns information about the provider implementation.
	Info() Info
}

// MockCompleter is a lightweight in-memory Completer for tests and local
// development. Responses are matched by exact prompt; unmatched prompts get
// a deterministic echo. Safe for concurrent use.
type MockCompleter struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	failWith  error
	delay     time.Duration
	calls     int
}

// NewMockCompleter constructs an empty MockCompleter.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{
		info:      Info{Name: "mock", Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a canned completion for an exact prompt.
func (m *MockCompleter) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// FailWith makes every subsequent Complete call return err. Pass nil to
// restore normal behavior.
func (m *MockCompleter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Delay makes every Complete call block for d (or until the context is
// cancelled) before responding. Used by timeout tests.
func (m *MockCompleter) Delay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Calls returns the number of Complete invocations observed.
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Complete implements Completer.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	failWith := m.failWith
	delay := m.delay
	resp, ok := m.responses[prompt]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if failWith != nil {
		return "", failWith
	}
	if !ok {
		return fmt.Sprintf("Mock response to: %s", prompt), nil
	}
	return resp, nil
}

// Info implements Completer.
func (m *MockCompleter) Info() Info { return m.info }
