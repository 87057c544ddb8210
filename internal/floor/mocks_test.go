package floor

import (
	"sync"

	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// MockNotifier records the refs it is asked to broadcast.
type MockNotifier struct {
	mu   sync.Mutex
	refs []string
}

func (m *MockNotifier) NotifyChange(e restaurant.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs = append(m.refs, restaurant.RefOf(e))
}

func (m *MockNotifier) Refs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.refs...)
}

func (m *MockNotifier) Has(ref string) bool {
	for _, r := range m.Refs() {
		if r == ref {
			return true
		}
	}
	return false
}

func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs = nil
}

// MockSequencer counts up from its start value.
type MockSequencer struct {
	next int
}

func (m *MockSequencer) Next() int {
	n := m.next
	m.next++
	return n
}
