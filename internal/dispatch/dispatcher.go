package dispatch

import (
	"fmt"
	"sync"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Listener receives entity snapshots of the category it registered for.
type Listener interface {
	Update(e restaurant.Entity)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e restaurant.Entity)

func (f ListenerFunc) Update(e restaurant.Entity) { f(e) }

// Executor runs fn on the goroutine that owns listener state, typically the
// host UI loop. The default runs fn inline.
type Executor func(fn func())

type Option func(*Dispatcher)

// WithExecutor sets the executor used for deliveries coming from other
// stations.
func WithExecutor(exec Executor) Option {
	return func(d *Dispatcher) {
		if exec != nil {
			d.exec = exec
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logging.OrNoop(logger)
	}
}

type registration struct {
	id       uint64
	listener Listener
}

// Dispatcher routes entities to per-category listeners.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[restaurant.Category][]registration
	nextID    uint64
	exec      Executor
	logger    logging.Logger
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		listeners: make(map[restaurant.Category][]registration),
		exec:      func(fn func()) { fn() },
		logger:    logging.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds a listener for a category and returns a function that
// removes it again.
func (d *Dispatcher) Register(c restaurant.Category, l Listener) (func(), error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot register listener: invalid category %v", c)
	}
	if l == nil {
		return nil, fmt.Errorf("cannot register nil listener for %v", c)
	}

	d.mu.Lock()
	d.nextID++
	id := d.nextID
	// Copy so deliveries hooked earlier keep their own slice.
	current := d.listeners[c]
	next := make([]registration, len(current), len(current)+1)
	copy(next, current)
	d.listeners[c] = append(next, registration{id: id, listener: l})
	d.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { d.unregister(c, id) }) }, nil
}

// RegisterAll registers l for every category.
func (d *Dispatcher) RegisterAll(l Listener) (func(), error) {
	removers := make([]func(), 0, len(restaurant.Categories))
	for _, c := range restaurant.Categories {
		remove, err := d.Register(c, l)
		if err != nil {
			for _, r := range removers {
				r()
			}
			return nil, err
		}
		removers = append(removers, remove)
	}
	return func() {
		for _, r := range removers {
			r()
		}
	}, nil
}

func (d *Dispatcher) unregister(c restaurant.Category, id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	current := d.listeners[c]
	next := make([]registration, 0, len(current))
	for _, r := range current {
		if r.id != id {
			next = append(next, r)
		}
	}
	d.listeners[c] = next
}

// Count returns the number of listeners registered for c.
func (d *Dispatcher) Count(c restaurant.Category) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[c])
}

// Hook attaches the listeners currently registered for the entity's
// category. Later registrations do not affect the returned delivery.
func (d *Dispatcher) Hook(e restaurant.Entity) Delivery {
	if e == nil {
		return Delivery{}
	}
	c := e.Category()
	switch c {
	case restaurant.CategoryOrder, restaurant.CategoryOrderItem,
		restaurant.CategoryMenuItem, restaurant.CategorySupply:
	default:
		d.logger.Error("cannot hook entity with unknown category", "category", c)
		return Delivery{}
	}

	d.mu.RLock()
	attached := d.listeners[c]
	d.mu.RUnlock()

	listeners := make([]Listener, len(attached))
	for i, r := range attached {
		listeners[i] = r.listener
	}
	return Delivery{entity: e, listeners: listeners}
}

// Dispatch hooks and notifies on the calling goroutine.
func (d *Dispatcher) Dispatch(e restaurant.Entity) {
	d.Hook(e).Notify()
}

// DispatchRemote hooks on the calling goroutine and notifies through the
// executor.
func (d *Dispatcher) DispatchRemote(e restaurant.Entity) {
	delivery := d.Hook(e)
	if len(delivery.listeners) == 0 {
		return
	}
	d.exec(delivery.Notify)
}

// Delivery is an entity bound to the listeners attached when it was hooked.
type Delivery struct {
	entity    restaurant.Entity
	listeners []Listener
}

func (dl Delivery) Len() int {
	return len(dl.listeners)
}

// Notify calls every attached listener in registration order.
func (dl Delivery) Notify() {
	for _, l := range dl.listeners {
		l.Update(dl.entity)
	}
}
