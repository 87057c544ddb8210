package lock

import (
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Manager implements advisory locks as zero-length marker files named by
// entity ref. A marker carries no owner and never expires; any station may
// remove it.
type Manager struct {
	store      *store.Store
	collection string
	logger     logging.Logger
}

func NewManager(s *store.Store, collection string, logger logging.Logger) *Manager {
	return &Manager{store: s, collection: collection, logger: logging.OrNoop(logger)}
}

func (m *Manager) Lock(e restaurant.Entity) {
	ref := restaurant.RefOf(e)
	m.store.Save(m.collection, ref, nil)
	m.logger.Debug("locked", "ref", ref)
}

func (m *Manager) Unlock(e restaurant.Entity) {
	ref := restaurant.RefOf(e)
	m.store.Delete(m.collection, ref)
	m.logger.Debug("unlocked", "ref", ref)
}

func (m *Manager) IsLocked(e restaurant.Entity) bool {
	return m.store.Exists(m.collection, restaurant.RefOf(e))
}

// Held returns the refs of every marker currently present.
func (m *Manager) Held() []string {
	return m.store.List(m.collection)
}

// Clear removes every marker and returns how many were removed. Operators
// use it after a station dies while holding locks.
func (m *Manager) Clear() int {
	refs := m.store.List(m.collection)
	for _, ref := range refs {
		m.store.Delete(m.collection, ref)
	}
	if len(refs) > 0 {
		m.logger.Info("cleared locks", "count", len(refs))
	}
	return len(refs)
}
