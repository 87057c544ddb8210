package commands

import (
	"fmt"
	"io"

	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/internal/supply"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// PrintRequests recomputes the restock requests from current stock and
// writes them to w, one "Name: N" line each.
func PrintRequests(cfg *config.Config, w io.Writer, logger logging.Logger) ([]supply.Request, error) {
	s := store.New(cfg.Data.Root, logger)
	catalog := files.NewCatalog(s, files.Collections{Stock: cfg.Paths.Stock}, logger)
	ledger := supply.NewLedger(s, catalog.Supplies,
		supply.File{Collection: cfg.Paths.Extras, Key: cfg.Paths.Reserved},
		supply.File{Collection: "", Key: cfg.Paths.Requests},
		logger)

	requests := ledger.UpdateRequests()
	for _, r := range requests {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return requests, err
		}
	}
	return requests, nil
}
