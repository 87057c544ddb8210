package view

import (
	"context"
	"sort"
	"sync"

	"github.com/appetiteclub/floorsync/internal/broadcast"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// replayLimit caps how many retained snapshots Warm reads from a stream.
const replayLimit = 10000

// Source is the station's own view of the shared records.
type Source interface {
	Exists(e restaurant.Entity) bool
	ListOrders() []*restaurant.Order
	ListMenu() []*restaurant.Item
	ListSupplies() []*restaurant.Supply
}

// StreamSource returns retained snapshots in publish order.
type StreamSource interface {
	Fetch(ctx context.Context, limit int) ([]pkg.StreamMessage, error)
}

// StateCache keeps what a station shows on screen. It listens to every
// category and decides per snapshot whether to upsert or drop the entity
// by asking the source whether its record is still active.
type StateCache struct {
	mu       sync.RWMutex
	orders   map[int]*restaurant.Order
	byTable  map[int][]int
	menu     map[string]*restaurant.Item
	supplies map[string]*restaurant.Supply
	version  uint64

	source Source
	stream StreamSource
	logger logging.Logger
}

func NewStateCache(source Source, stream StreamSource, logger logging.Logger) *StateCache {
	return &StateCache{
		orders:   make(map[int]*restaurant.Order),
		byTable:  make(map[int][]int),
		menu:     make(map[string]*restaurant.Item),
		supplies: make(map[string]*restaurant.Supply),
		source:   source,
		stream:   stream,
		logger:   logging.OrNoop(logger),
	}
}

// Warm fills the cache. Retained stream snapshots are preferred; the local
// records are used when no stream is configured or the replay fails.
func (c *StateCache) Warm(ctx context.Context) error {
	if c.stream != nil {
		if err := c.warmFromStream(ctx); err != nil {
			c.logger.Info("snapshot replay failed, loading local records", "error", err)
		} else {
			c.pruneInactive()
			return nil
		}
	}
	return c.WarmFromSource()
}

// WarmFromSource rebuilds the cache from the local records.
func (c *StateCache) WarmFromSource() error {
	if c.source == nil {
		c.logger.Info("no source configured, cache remains empty")
		return nil
	}

	orders := c.source.ListOrders()
	menu := c.source.ListMenu()
	supplies := c.source.ListSupplies()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	for _, o := range orders {
		c.setOrderLocked(o)
	}
	for _, m := range menu {
		c.menu[m.Name] = m
	}
	for _, s := range supplies {
		c.supplies[s.Name] = s
	}
	c.version++
	c.logger.Info("cache warmed from records", "orders", len(orders), "menu", len(menu), "supplies", len(supplies))
	return nil
}

func (c *StateCache) warmFromStream(ctx context.Context) error {
	messages, err := c.stream.Fetch(ctx, replayLimit)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	applied := 0
	for _, msg := range messages {
		e, _, err := broadcast.Decode(msg.Data)
		if err != nil {
			c.logger.Debug("skipping undecodable retained snapshot", "sequence", msg.Sequence, "error", err)
			continue
		}
		c.upsertLocked(e)
		applied++
	}
	c.version++
	c.logger.Info("cache warmed from stream", "snapshots", applied, "orders", len(c.orders))
	return nil
}

// pruneInactive drops replayed entities whose records are gone.
func (c *StateCache) pruneInactive() {
	if c.source == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for n, o := range c.orders {
		if o.Finished || !c.source.Exists(o) {
			c.removeOrderLocked(n)
			removed++
		}
	}
	for name, m := range c.menu {
		if !c.source.Exists(m) {
			delete(c.menu, name)
			removed++
		}
	}
	for name, s := range c.supplies {
		if !c.source.Exists(s) {
			delete(c.supplies, name)
			removed++
		}
	}
	c.logger.Info("removed inactive entities from cache", "count", removed)
}

// Update applies one snapshot. It satisfies dispatch.Listener.
func (c *StateCache) Update(e restaurant.Entity) {
	if e == nil {
		return
	}
	active := c.source == nil || c.source.Exists(e)

	c.mu.Lock()
	defer c.mu.Unlock()
	if active {
		c.upsertLocked(e)
	} else {
		c.removeLocked(e)
	}
	c.version++
}

func (c *StateCache) upsertLocked(e restaurant.Entity) {
	switch e.Category() {
	case restaurant.CategoryOrder:
		o := e.(*restaurant.Order)
		if o.Finished {
			c.removeOrderLocked(o.Number)
			return
		}
		c.setOrderLocked(o.Clone())
	case restaurant.CategoryOrderItem:
		item := e.(*restaurant.Item).Clone()
		o, ok := c.orders[item.OrderNumber]
		if !ok {
			o = restaurant.NewOrder(item.OrderNumber, item.TableNumber)
			c.setOrderLocked(o)
		}
		o.PutItem(item)
	case restaurant.CategoryMenuItem:
		m := e.(*restaurant.Item)
		c.menu[m.Name] = m.Clone()
	case restaurant.CategorySupply:
		s := e.(*restaurant.Supply)
		c.supplies[s.Name] = s.Clone()
	}
}

func (c *StateCache) removeLocked(e restaurant.Entity) {
	switch e.Category() {
	case restaurant.CategoryOrder:
		c.removeOrderLocked(e.(*restaurant.Order).Number)
	case restaurant.CategoryOrderItem:
		item := e.(*restaurant.Item)
		if o, ok := c.orders[item.OrderNumber]; ok {
			o.RemoveItem(item.Number)
		}
	case restaurant.CategoryMenuItem:
		delete(c.menu, e.Key())
	case restaurant.CategorySupply:
		delete(c.supplies, e.Key())
	}
}

func (c *StateCache) setOrderLocked(o *restaurant.Order) {
	if old, ok := c.orders[o.Number]; ok {
		c.removeFromTable(old.TableNumber, old.Number)
	}
	c.orders[o.Number] = o
	c.byTable[o.TableNumber] = append(c.byTable[o.TableNumber], o.Number)
}

func (c *StateCache) removeOrderLocked(number int) {
	o, ok := c.orders[number]
	if !ok {
		return
	}
	c.removeFromTable(o.TableNumber, number)
	delete(c.orders, number)
}

func (c *StateCache) removeFromTable(table, number int) {
	ids := c.byTable[table]
	for i, id := range ids {
		if id == number {
			c.byTable[table] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(c.byTable[table]) == 0 {
		delete(c.byTable, table)
	}
}

func (c *StateCache) resetLocked() {
	c.orders = make(map[int]*restaurant.Order)
	c.byTable = make(map[int][]int)
	c.menu = make(map[string]*restaurant.Item)
	c.supplies = make(map[string]*restaurant.Supply)
}

// Order returns a copy of a cached order.
func (c *StateCache) Order(number int) (*restaurant.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.orders[number]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

// Orders returns copies of every cached order sorted by number.
func (c *StateCache) Orders() []*restaurant.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*restaurant.Order, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (c *StateCache) OrdersByTable(table int) []*restaurant.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.byTable[table]
	out := make([]*restaurant.Order, 0, len(ids))
	for _, id := range ids {
		if o := c.orders[id]; o != nil {
			out = append(out, o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Item finds an ordered item in any cached order.
func (c *StateCache) Item(number int) (*restaurant.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, o := range c.orders {
		if item := o.Item(number); item != nil {
			return item.Clone(), true
		}
	}
	return nil, false
}

// ItemsByStatus returns the cached items with the given status code,
// ordered by item number.
func (c *StateCache) ItemsByStatus(status string) []*restaurant.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*restaurant.Item
	for _, o := range c.orders {
		for _, item := range o.Items {
			if item.Status == status {
				out = append(out, item.Clone())
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (c *StateCache) Menu() []*restaurant.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*restaurant.Item, 0, len(c.menu))
	for _, m := range c.menu {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *StateCache) Supplies() []*restaurant.Supply {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*restaurant.Supply, 0, len(c.supplies))
	for _, s := range c.supplies {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *StateCache) Supply(name string) (*restaurant.Supply, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.supplies[name]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Version increases on every applied change.
func (c *StateCache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
