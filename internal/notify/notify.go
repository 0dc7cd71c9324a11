// Package notify bridges pipeline events to chat platforms (Slack, Discord).
package notify

import (
	"context"
	"sync"
)

// Severity levels for notification events.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityInfo    = "info"
)

// Event is one notification to deliver.
type Event struct {
	Title    string // headline, e.g. `Published "Next.js 15" to WordPress`
	Body     string // detail text, may be empty
	Severity string // success, error, info
}

// Notifier is the interface platform-specific implementations satisfy.
type Notifier interface {
	// Notify delivers one event. Implementations should be best-effort;
	// the pipeline never fails an item because a notification failed.
	Notify(ctx context.Context, ev Event) error
}

// Multi fans one event out to several notifiers, collecting the first error.
type Multi []Notifier

// Notify sends the event to every notifier in order.
func (m Multi) Notify(ctx context.Context, ev Event) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Mock records events for tests.
type Mock struct {
	mu     sync.Mutex
	Events []Event
	Err    error
}

// Notify records the event and returns the configured error.
func (m *Mock) Notify(ctx context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, ev)
	return m.Err
}

// Count returns the number of recorded events.
func (m *Mock) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}
