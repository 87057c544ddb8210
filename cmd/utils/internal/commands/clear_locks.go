package commands

import (
	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/lock"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// ClearLocks removes every lock marker. Locks never expire, so a station
// that crashed while editing leaves its orders locked until this runs.
func ClearLocks(cfg *config.Config, logger logging.Logger) int {
	s := store.New(cfg.Data.Root, logger)
	m := lock.NewManager(s, cfg.Paths.Locks, logger)

	for _, ref := range m.Held() {
		logger.Info("Clearing lock", "ref", ref)
	}
	n := m.Clear()
	logger.Info("Locks cleared", "count", n)
	return n
}
