package floor

import (
	"github.com/appetiteclub/floorsync/internal/lock"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Locks pairs every lock change with a broadcast of the entity so other
// stations refresh their editable state.
type Locks struct {
	manager  *lock.Manager
	notifier Notifier
	logger   logging.Logger
}

func NewLocks(m *lock.Manager, n Notifier, logger logging.Logger) *Locks {
	return &Locks{manager: m, notifier: n, logger: logging.OrNoop(logger)}
}

func (l *Locks) Lock(e restaurant.Entity) {
	l.manager.Lock(e)
	l.notifier.NotifyChange(e)
}

func (l *Locks) Unlock(e restaurant.Entity) {
	l.manager.Unlock(e)
	l.notifier.NotifyChange(e)
}

func (l *Locks) IsLocked(e restaurant.Entity) bool {
	return l.manager.IsLocked(e)
}
