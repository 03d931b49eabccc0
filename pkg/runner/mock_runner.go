package runner

import (
	"context"
	"sync"
)

// Call records one invocation of a MockRunner
type Call struct {
	Dir  string
	Name string
	Args []string
}

// MockRunner is a Runner for tests. RunFunc decides the outcome of each
// call; every call is recorded in order.
type MockRunner struct {
	RunFunc func(dir string, name string, args ...string) (*Result, error)

	mu    sync.Mutex
	calls []Call
}

// Run implements the Runner interface
func (m *MockRunner) Run(ctx context.Context, dir string, name string, args ...string) (*Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Dir: dir, Name: name, Args: append([]string(nil), args...)})
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(dir, name, args...)
	}
	return &Result{}, nil
}

// Calls returns the recorded invocations
func (m *MockRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns the number of recorded invocations
func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
