package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/floorsync/cmd/utils/internal/seeding"
	"github.com/appetiteclub/floorsync/internal/app"
	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// SeedDemo joins the shared root as a short-lived station and creates the
// demo menu and stock. Stations that are running receive the snapshots.
func SeedDemo(ctx context.Context, cfg *config.Config, logger logging.Logger) (seeding.Result, error) {
	logger.Info("Starting demo seeding process...")

	c := *cfg
	c.Web.Port = 0
	a := app.New(&c, logger)
	if err := a.Initialize(ctx); err != nil {
		return seeding.Result{}, fmt.Errorf("join data root: %w", err)
	}
	defer a.Shutdown()

	res, err := seeding.SeedMenu(a.Floor(), logger)
	if err != nil {
		return res, fmt.Errorf("seed menu: %w", err)
	}
	return res, nil
}
