package git

import (
	"context"
)

// MockChangeLister is a mock implementation of the ChangeLister
// for testing purposes
type MockChangeLister struct {
	// Changes is the result to return from ListStagedChanges
	Changes []StagedChange
	// Err is the error to return from ListStagedChanges
	Err error
	// Calls counts ListStagedChanges invocations
	Calls int
}

// NewMockChangeLister creates a new MockChangeLister returning changes
func NewMockChangeLister(changes ...StagedChange) *MockChangeLister {
	return &MockChangeLister{Changes: changes}
}

// ListStagedChanges implements the ChangeLister interface
func (m *MockChangeLister) ListStagedChanges(ctx context.Context) ([]StagedChange, error) {
	m.Calls++
	return m.Changes, m.Err
}
