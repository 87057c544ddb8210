package view

import (
	"context"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg"
)

// MockSource serves fixed lists and reports existence from a ref set.
type MockSource struct {
	active   map[string]bool
	orders   []*restaurant.Order
	menu     []*restaurant.Item
	supplies []*restaurant.Supply
}

func NewMockSource() *MockSource {
	return &MockSource{active: make(map[string]bool)}
}

func (m *MockSource) Activate(entities ...restaurant.Entity) {
	for _, e := range entities {
		m.active[restaurant.RefOf(e)] = true
	}
}

func (m *MockSource) Deactivate(e restaurant.Entity) {
	delete(m.active, restaurant.RefOf(e))
}

func (m *MockSource) Exists(e restaurant.Entity) bool {
	return m.active[restaurant.RefOf(e)]
}

func (m *MockSource) ListOrders() []*restaurant.Order    { return m.orders }
func (m *MockSource) ListMenu() []*restaurant.Item       { return m.menu }
func (m *MockSource) ListSupplies() []*restaurant.Supply { return m.supplies }

// MockStream returns canned retained messages.
type MockStream struct {
	messages []pkg.StreamMessage
	err      error
	calls    int
}

func (m *MockStream) Fetch(ctx context.Context, limit int) ([]pkg.StreamMessage, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.messages) > limit {
		return m.messages[:limit], nil
	}
	return m.messages, nil
}
