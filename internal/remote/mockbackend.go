package remote

import (
	"context"
	"sync"
)

// MockBackend is an in-memory Backend for tests. It records every call and
// lets tests inject failures per object name.
type MockBackend struct {
	mu      sync.Mutex
	Objects map[string][]byte

	ReachableErr error
	GetErrs      map[string]error
	PutErrs      map[string]error

	// OnReachable runs before Reachable returns; tests use it to hold a run open.
	OnReachable func()

	ReachableCalls int
	Gets           []string
	Puts           []string
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Objects: map[string][]byte{},
		GetErrs: map[string]error{},
		PutErrs: map[string]error{},
	}
}

func (m *MockBackend) Reachable(ctx context.Context) error {
	m.mu.Lock()
	m.ReachableCalls++
	hook := m.OnReachable
	err := m.ReachableErr
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return err
}

func (m *MockBackend) Get(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets = append(m.Gets, name)
	if err := m.GetErrs[name]; err != nil {
		return nil, err
	}
	data, ok := m.Objects[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MockBackend) Put(ctx context.Context, name string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Puts = append(m.Puts, name)
	if err := m.PutErrs[name]; err != nil {
		return err
	}
	m.Objects[name] = append([]byte(nil), data...)
	return nil
}

// PutCount returns how many times name was written.
func (m *MockBackend) PutCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.Puts {
		if p == name {
			n++
		}
	}
	return n
}

// TotalPuts returns the number of writes of any object.
func (m *MockBackend) TotalPuts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Puts)
}

// TotalCalls returns every recorded call, reachability probes included.
func (m *MockBackend) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ReachableCalls + len(m.Gets) + len(m.Puts)
}

// ResetCalls clears the recorded calls but keeps the stored objects.
func (m *MockBackend) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReachableCalls = 0
	m.Gets = nil
	m.Puts = nil
}
