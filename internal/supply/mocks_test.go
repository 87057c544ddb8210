package supply

import (
	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// MockRepository is an in-memory Repository.
type MockRepository struct {
	supplies  map[string]*restaurant.Supply
	saveCalls int
}

func NewMockRepository(supplies ...*restaurant.Supply) *MockRepository {
	m := &MockRepository{supplies: make(map[string]*restaurant.Supply)}
	for _, s := range supplies {
		m.supplies[s.Name] = s.Clone()
	}
	return m
}

func (m *MockRepository) Get(name string) (*restaurant.Supply, bool) {
	s, ok := m.supplies[name]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

func (m *MockRepository) Save(s *restaurant.Supply) {
	m.saveCalls++
	m.supplies[s.Name] = s.Clone()
}

func (m *MockRepository) List() []*restaurant.Supply {
	out := make([]*restaurant.Supply, 0, len(m.supplies))
	for _, s := range m.supplies {
		out = append(out, s.Clone())
	}
	return out
}
