package app

import (
	"context"
	"fmt"

	"github.com/appetiteclub/floorsync/internal/broadcast"
	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/dispatch"
	"github.com/appetiteclub/floorsync/internal/feed"
	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/floor"
	"github.com/appetiteclub/floorsync/internal/lock"
	"github.com/appetiteclub/floorsync/internal/station"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/internal/supply"
	"github.com/appetiteclub/floorsync/internal/view"
	"github.com/appetiteclub/floorsync/pkg/logging"
	"golang.org/x/sync/errgroup"
)

const (
	AppName    = "floorsync"
	AppVersion = "0.1.0"
)

// App wires one station: shared store, replication, domain services and
// the optional HTTP surface and feed.
type App struct {
	config *config.Config
	logger logging.Logger

	store       *store.Store
	catalog     *files.Catalog
	dispatcher  *dispatch.Dispatcher
	broadcaster *broadcast.Broadcaster
	floor       *floor.Floor
	cache       *view.StateCache
	feed        *feed.Feed
	server      *station.Server
}

// Option customizes the App before Initialize.
type Option func(*App)

// WithDispatcher lets a host supply a dispatcher bound to its UI loop.
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(a *App) {
		a.dispatcher = d
	}
}

func New(cfg *config.Config, logger logging.Logger, opts ...Option) *App {
	a := &App{config: cfg, logger: logging.OrNoop(logger)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize creates the data layout and builds every component. The
// station's mailbox exists once it returns.
func (a *App) Initialize(ctx context.Context) error {
	cfg := a.config
	paths := cfg.Paths

	a.store = store.New(cfg.Data.Root, a.logger)
	a.catalog = files.NewCatalog(a.store, files.Collections{
		Orders:         paths.Orders,
		FinishedOrders: paths.FinishedOrders,
		Items:          paths.Items,
		FinishedItems:  paths.FinishedItems,
		Menu:           paths.Menu,
		Stock:          paths.Stock,
	}, a.logger)
	if err := a.store.EnsureCollections(append(cfg.Collections(), a.catalog.CollectionNames()...)...); err != nil {
		return fmt.Errorf("cannot prepare data root %s: %w", cfg.Data.Root, err)
	}

	orderSeq := store.NewSequence(a.store, paths.Extras, paths.OrderCounter, cfg.Sequence.OrderStart, a.logger)
	itemSeq := store.NewSequence(a.store, paths.Extras, paths.ItemCounter, cfg.Sequence.ItemStart, a.logger)
	ledger := supply.NewLedger(a.store, a.catalog.Supplies,
		supply.File{Collection: paths.Extras, Key: paths.Reserved},
		supply.File{Collection: "", Key: paths.Requests},
		a.logger)
	locks := lock.NewManager(a.store, paths.Locks, a.logger)

	if a.dispatcher == nil {
		a.dispatcher = dispatch.New(dispatch.WithLogger(a.logger))
	}

	id := broadcast.NewInstanceID()
	f, err := feed.Open(ctx, cfg.Feed, AppName+"-"+id, a.logger)
	if err != nil {
		return fmt.Errorf("cannot open snapshot feed: %w", err)
	}
	a.feed = f

	opts := []broadcast.Option{
		broadcast.WithLogger(a.logger),
		broadcast.WithWatch(cfg.Mailbox.Watch),
	}
	var replay view.StreamSource
	if a.feed != nil {
		opts = append(opts, broadcast.WithMirror(a.feed, a.feed.Subject()))
		if s, ok := a.feed.Replay(); ok {
			replay = s
		}
	}
	a.broadcaster, err = broadcast.New(id, a.store, paths.Mailboxes, a.dispatcher, opts...)
	if err != nil {
		a.closeFeed()
		return err
	}

	a.cache = view.NewStateCache(a.catalog, replay, a.logger)
	if _, err := a.dispatcher.RegisterAll(a.cache); err != nil {
		return err
	}

	a.floor = floor.New(floor.Deps{
		Catalog:  a.catalog,
		Ledger:   ledger,
		Locks:    locks,
		Notifier: a.broadcaster,
		OrderSeq: orderSeq,
		ItemSeq:  itemSeq,
		Logger:   a.logger,
	})

	if cfg.Web.Port > 0 {
		h := station.NewHandler(id, a.cache, a.floor.Kitchen, a.floor.Stock, a.logger)
		a.server = station.NewServer(cfg.Web.Port, h, a.logger)
	}

	a.logger.Info("station initialized", "instance", id, "root", cfg.Data.Root)
	return nil
}

// Run warms the view, drains the mailbox on every poll and serves HTTP
// until ctx ends. The station's mailbox is removed on the way out.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("Starting %s(%s)", AppName, AppVersion)
	defer a.Shutdown()

	if err := a.cache.Warm(ctx); err != nil {
		a.logger.Info("failed to warm state cache", "error", err)
	}
	if err := a.broadcaster.Start(ctx, a.config.Mailbox.PollInterval); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.server != nil {
		g.Go(func() error { return a.server.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Infof("%s(%s) stopped", AppName, AppVersion)
	return nil
}

// Shutdown unregisters the station and closes the feed. It is safe to
// call more than once.
func (a *App) Shutdown() {
	if a.broadcaster != nil && a.broadcaster.State() == broadcast.StateActive {
		a.broadcaster.Unregister()
	}
	a.closeFeed()
}

func (a *App) closeFeed() {
	if a.feed == nil {
		return
	}
	if err := a.feed.Close(); err != nil {
		a.logger.Error("cannot close snapshot feed", "error", err)
	}
	a.feed = nil
}

func (a *App) Floor() *floor.Floor {
	return a.floor
}

func (a *App) Cache() *view.StateCache {
	return a.cache
}

func (a *App) Dispatcher() *dispatch.Dispatcher {
	return a.dispatcher
}

func (a *App) Broadcaster() *broadcast.Broadcaster {
	return a.broadcaster
}
