package commands

import (
	"path"

	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// PruneMailboxes removes the mailboxes of stations that are not listed in
// keep. Stations that exited without unregistering otherwise keep
// receiving snapshots forever. Only run it while the listed stations are
// the only ones alive.
func PruneMailboxes(cfg *config.Config, keep []string, logger logging.Logger) []string {
	logger.Infof("⚠️  Removing every mailbox except %d live station(s)", len(keep))

	live := make(map[string]bool, len(keep))
	for _, id := range keep {
		live[id] = true
	}

	s := store.New(cfg.Data.Root, logger)
	var removed []string
	for _, id := range s.ListDirs(cfg.Paths.Mailboxes) {
		if live[id] {
			continue
		}
		logger.Info("Removing mailbox", "instance", id)
		s.RemoveCollection(path.Join(cfg.Paths.Mailboxes, id))
		removed = append(removed, id)
	}

	logger.Info("Mailboxes pruned", "removed", len(removed))
	return removed
}
