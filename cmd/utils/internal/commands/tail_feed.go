package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/feed"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg/event"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// TailFeed prints every mirrored snapshot until ctx ends.
func TailFeed(ctx context.Context, cfg *config.Config, w io.Writer, logger logging.Logger) error {
	if cfg.Feed.NATS.URL == "" {
		return errors.New("feed.nats.url is not configured")
	}
	return feed.Follow(ctx, cfg.Feed.NATS.URL, "floorsync-tail", cfg.Feed.Subject, func(e restaurant.Entity, env event.Snapshot) {
		fmt.Fprintf(w, "%s %s from %s\n", env.OccurredAt.Format("15:04:05"), restaurant.RefOf(e), env.Origin)
	}, logger)
}
