package broadcast

import (
	"context"
	"errors"
	"sync"

	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// MockRouter records dispatched entities.
type MockRouter struct {
	mu     sync.Mutex
	local  []restaurant.Entity
	remote []restaurant.Entity
}

func (m *MockRouter) Dispatch(e restaurant.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.local = append(m.local, e)
}

func (m *MockRouter) DispatchRemote(e restaurant.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remote = append(m.remote, e)
}

func (m *MockRouter) Local() []restaurant.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]restaurant.Entity(nil), m.local...)
}

func (m *MockRouter) Remote() []restaurant.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]restaurant.Entity(nil), m.remote...)
}

// MockMirror records published messages.
type MockMirror struct {
	mu       sync.Mutex
	subjects []string
	fail     bool
}

func (m *MockMirror) Publish(ctx context.Context, subject string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("mirror down")
	}
	m.subjects = append(m.subjects, subject)
	return nil
}
