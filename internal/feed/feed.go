package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/floorsync/internal/broadcast"
	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg"
	"github.com/appetiteclub/floorsync/pkg/event"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

const (
	StreamName   = "FLOORSYNC_SNAPSHOTS"
	streamMaxAge = 24 * time.Hour
)

type publisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
	Close() error
}

// Feed mirrors snapshots to NATS for observers outside the shared
// filesystem. Stations never read their own replication from it.
type Feed struct {
	pub     publisher
	stream  *pkg.NATSStream
	subject string
	logger  logging.Logger
}

// Open connects the feed. It returns nil without error when no URL is
// configured.
func Open(ctx context.Context, cfg config.Feed, name string, logger logging.Logger) (*Feed, error) {
	if cfg.NATS.URL == "" {
		return nil, nil
	}
	logger = logging.OrNoop(logger)
	subject := cfg.Subject
	if subject == "" {
		subject = event.SnapshotsTopic
	}

	f := &Feed{subject: subject, logger: logger}
	if cfg.NATS.Stream {
		s, err := pkg.NewNATSStream(ctx, pkg.NATSStreamConfig{
			URL:          cfg.NATS.URL,
			Name:         name,
			StreamName:   StreamName,
			Subject:      subject + ".>",
			ConsumerName: "replay-" + name,
			MaxAge:       streamMaxAge,
		})
		if err != nil {
			return nil, err
		}
		f.pub, f.stream = s, s
		logger.Info("snapshot feed connected", "url", cfg.NATS.URL, "stream", StreamName)
		return f, nil
	}

	p, err := pkg.NewNATSPublisher(cfg.NATS.URL, name)
	if err != nil {
		return nil, err
	}
	f.pub = p
	logger.Info("snapshot feed connected", "url", cfg.NATS.URL)
	return f, nil
}

// Subject is the prefix snapshots are published under.
func (f *Feed) Subject() string {
	return f.subject
}

func (f *Feed) Publish(ctx context.Context, subject string, data []byte) error {
	return f.pub.Publish(ctx, subject, data)
}

// Replay returns the retained stream when the feed runs on JetStream.
func (f *Feed) Replay() (*pkg.NATSStream, bool) {
	return f.stream, f.stream != nil
}

func (f *Feed) Close() error {
	return f.pub.Close()
}

// Follow subscribes to every category under prefix and hands decoded
// snapshots to fn until ctx ends.
func Follow(ctx context.Context, url, name, prefix string, fn func(restaurant.Entity, event.Snapshot), logger logging.Logger) error {
	logger = logging.OrNoop(logger)
	if prefix == "" {
		prefix = event.SnapshotsTopic
	}
	sub, err := pkg.NewNATSSubscriber(url, name)
	if err != nil {
		return err
	}
	defer sub.Close()

	onError := func(err error) { logger.Warn("dropping feed message", "error", err) }
	if err := sub.Subscribe(ctx, prefix+".>", Handler(fn), onError); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Handler decodes snapshot envelopes for fn.
func Handler(fn func(restaurant.Entity, event.Snapshot)) pkg.HandlerFunc {
	return func(ctx context.Context, data []byte) error {
		e, env, err := broadcast.Decode(data)
		if err != nil {
			return fmt.Errorf("feed: %w", err)
		}
		fn(e, env)
		return nil
	}
}
