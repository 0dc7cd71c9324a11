package pipeline

import "sync"

// Progress reports position within a bulk operation. Current is the 1-based
// index of the item currently being processed.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Tracker is a derived projection of in-flight agent work: a count per
// capability plus the position of any running bulk operation. It is advisory
// UI state, not a lock; it never serializes calls.
type Tracker struct {
	mu     sync.Mutex
	active map[string]int
	bulk   *Progress
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]int)}
}

// Begin marks one operation in flight against a capability and returns the
// matching done func. The done func must run unconditionally, success or
// failure.
func (t *Tracker) Begin(capabilityID string) func() {
	t.mu.Lock()
	t.active[capabilityID]++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			t.active[capabilityID]--
			if t.active[capabilityID] <= 0 {
				delete(t.active, capabilityID)
			}
			t.mu.Unlock()
		})
	}
}

// InFlight returns the total count of operations currently in flight.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.active {
		n += c
	}
	return n
}

// Active returns a copy of the per-capability in-flight counts.
func (t *Tracker) Active() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.active))
	for k, v := range t.active {
		out[k] = v
	}
	return out
}

// StartBulk records the start of a bulk operation.
func (t *Tracker) StartBulk(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bulk = &Progress{Current: 0, Total: total}
}

// UpdateBulk records the 1-based index of the item now being processed.
func (t *Tracker) UpdateBulk(current int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bulk != nil {
		t.bulk.Current = current
	}
}

// EndBulk clears the bulk progress.
func (t *Tracker) EndBulk() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bulk = nil
}

// Bulk returns a copy of the current bulk progress, or nil when no bulk
// operation is running.
func (t *Tracker) Bulk() *Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bulk == nil {
		return nil
	}
	p := *t.bulk
	return &p
}
