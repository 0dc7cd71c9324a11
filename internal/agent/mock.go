package agent

import (
	"context"
	"fmt"
	"sync"
)

// MockInvoker is a scripted Invoker for tests. Results are returned per
// capability ID; every call is recorded.
type MockInvoker struct {
	mu      sync.Mutex
	results map[string]*Result
	errs    map[string]error
	Calls   []MockCall
}

// MockCall records one Invoke call.
type MockCall struct {
	Message      string
	CapabilityID string
}

// NewMock creates an empty MockInvoker.
func NewMock() *MockInvoker {
	return &MockInvoker{
		results: make(map[string]*Result),
		errs:    make(map[string]error),
	}
}

// Script sets the result returned for a capability ID.
func (m *MockInvoker) Script(capabilityID string, r *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[capabilityID] = r
}

// ScriptError sets a transport-level error for a capability ID.
func (m *MockInvoker) ScriptError(capabilityID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[capabilityID] = err
}

// Invoke returns the scripted result for the capability.
func (m *MockInvoker) Invoke(ctx context.Context, message, capabilityID string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Message: message, CapabilityID: capabilityID})
	if err, ok := m.errs[capabilityID]; ok {
		return nil, err
	}
	if r, ok := m.results[capabilityID]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("agent: no scripted result for capability %q", capabilityID)
}

// CallCount returns the number of Invoke calls recorded.
func (m *MockInvoker) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
