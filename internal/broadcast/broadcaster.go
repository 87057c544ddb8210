package broadcast

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/event"
	"github.com/appetiteclub/floorsync/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

const DefaultPollInterval = time.Second

// Router is the local observer dispatch the broadcaster feeds.
type Router interface {
	Dispatch(e restaurant.Entity)
	DispatchRemote(e restaurant.Entity)
}

// Mirror receives a copy of every locally originated snapshot.
type Mirror interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

type State int

const (
	StateActive State = iota
	StateUnregistered
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateUnregistered:
		return "unregistered"
	default:
		return "unknown"
	}
}

type Option func(*Broadcaster)

func WithLogger(logger logging.Logger) Option {
	return func(b *Broadcaster) { b.logger = logging.OrNoop(logger) }
}

// WithMirror publishes every local snapshot under subjectPrefix.<category>.
func WithMirror(m Mirror, subjectPrefix string) Option {
	return func(b *Broadcaster) {
		b.mirror = m
		b.subjectPrefix = subjectPrefix
	}
}

// WithWatch drains as soon as the mailbox directory changes, in addition to
// the ticker.
func WithWatch(enabled bool) Option {
	return func(b *Broadcaster) { b.watch = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(b *Broadcaster) { b.now = now }
}

// Broadcaster replicates entity snapshots through per-station mailbox
// directories under a shared root. Delivery is at least once and the last
// snapshot drained for an entity wins.
type Broadcaster struct {
	id            string
	store         *store.Store
	root          string
	router        Router
	mirror        Mirror
	subjectPrefix string
	watch         bool
	now           func() time.Time
	logger        logging.Logger

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	done    chan struct{}
	drainMu sync.Mutex
}

// NewInstanceID returns a time-ordered mailbox identity.
func NewInstanceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// New creates the broadcaster and its mailbox directory root/<id>.
func New(id string, s *store.Store, root string, router Router, opts ...Option) (*Broadcaster, error) {
	if err := store.ValidKey(id); err != nil {
		return nil, fmt.Errorf("invalid instance id: %w", err)
	}
	if router == nil {
		return nil, fmt.Errorf("broadcaster requires a router")
	}
	b := &Broadcaster{
		id:     id,
		store:  s,
		root:   root,
		router: router,
		now:    time.Now,
		logger: logging.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("instance", id)

	if err := s.EnsureCollections(b.mailbox()); err != nil {
		return nil, fmt.Errorf("cannot create mailbox: %w", err)
	}
	return b, nil
}

func (b *Broadcaster) ID() string {
	return b.id
}

func (b *Broadcaster) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Broadcaster) mailbox() string {
	return path.Join(b.root, b.id)
}

// NotifyChange dispatches e locally, then overwrites its snapshot in every
// sibling mailbox. Local dispatch happens even when every write fails.
func (b *Broadcaster) NotifyChange(e restaurant.Entity) {
	if e == nil {
		return
	}
	b.router.Dispatch(e)

	data, err := Encode(b.id, e, b.now())
	if err != nil {
		b.logger.Error("cannot encode snapshot", "error", err)
		return
	}

	ref := restaurant.RefOf(e)
	sent := 0
	for _, sibling := range b.Siblings() {
		b.store.SaveAtomic(path.Join(b.root, sibling), ref, data)
		sent++
	}
	b.logger.Debug("broadcast snapshot", "ref", ref, "siblings", sent)

	if b.mirror != nil {
		subject := event.SubjectFor(b.subjectPrefix, e.Category().Code())
		if err := b.mirror.Publish(context.Background(), subject, data); err != nil {
			b.logger.Error("cannot mirror snapshot", "ref", ref, "subject", subject, "error", err)
		}
	}
}

// Siblings lists the mailboxes of every other registered station.
func (b *Broadcaster) Siblings() []string {
	dirs := b.store.ListDirs(b.root)
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != b.id {
			out = append(out, d)
		}
	}
	return out
}

// Drain applies and deletes every pending snapshot in this station's
// mailbox and returns how many were applied. Undecodable files are dropped.
func (b *Broadcaster) Drain() int {
	b.drainMu.Lock()
	defer b.drainMu.Unlock()

	if b.State() != StateActive {
		return 0
	}

	mailbox := b.mailbox()
	applied := 0
	for _, key := range b.store.List(mailbox) {
		data, ok := b.store.Load(mailbox, key)
		if !ok {
			continue
		}
		e, env, err := Decode(data)
		if err != nil {
			b.logger.Error("dropping undecodable snapshot", "file", key, "error", err)
			b.store.Delete(mailbox, key)
			continue
		}
		b.router.DispatchRemote(e)
		b.store.Delete(mailbox, key)
		applied++
		b.logger.Debug("applied snapshot", "ref", env.Ref, "origin", env.Origin)
	}
	return applied
}

// Start drains on every tick until ctx ends or Stop is called. A
// non-positive interval uses DefaultPollInterval.
func (b *Broadcaster) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	b.mu.Lock()
	if b.state != StateActive {
		b.mu.Unlock()
		return fmt.Errorf("broadcaster %s is %s", b.id, b.state)
	}
	if b.cancel != nil {
		b.mu.Unlock()
		return fmt.Errorf("broadcaster %s already started", b.id)
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.done = make(chan struct{})
	done := b.done
	b.mu.Unlock()

	var watcher *fsnotify.Watcher
	if b.watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			b.logger.Error("mailbox watch disabled", "error", err)
		} else if err := w.Add(b.store.Dir(b.mailbox())); err != nil {
			b.logger.Error("mailbox watch disabled", "error", err)
			w.Close()
		} else {
			watcher = w
		}
	}

	go b.loop(ctx, interval, watcher, done)
	b.logger.Info("mailbox polling started", "interval", interval.String(), "watch", watcher != nil)
	return nil
}

func (b *Broadcaster) loop(ctx context.Context, interval time.Duration, watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if watcher != nil {
		defer watcher.Close()
		events = watcher.Events
		errs = watcher.Errors
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Drain()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Write) {
				b.Drain()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			b.logger.Error("mailbox watch error", "error", err)
		}
	}
}

// Stop ends polling and waits for an in-flight drain to finish.
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	b.logger.Info("mailbox polling stopped")
}

// Unregister stops polling and removes this station's mailbox. Snapshots
// already addressed to it are discarded. Later NotifyChange calls still
// dispatch locally and reach siblings.
func (b *Broadcaster) Unregister() {
	b.Stop()

	b.mu.Lock()
	if b.state == StateUnregistered {
		b.mu.Unlock()
		return
	}
	b.state = StateUnregistered
	b.mu.Unlock()

	b.drainMu.Lock()
	b.store.RemoveCollection(b.mailbox())
	b.drainMu.Unlock()
	b.logger.Info("mailbox unregistered")
}
