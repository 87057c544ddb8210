package floor

import (
	"fmt"

	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/supply"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Orders covers the server-terminal actions on orders and their items.
type Orders struct {
	catalog  *files.Catalog
	ledger   *supply.Ledger
	locks    *Locks
	notifier Notifier
	orderSeq Sequencer
	itemSeq  Sequencer
	logger   logging.Logger
}

func NewOrders(d Deps, locks *Locks) *Orders {
	return &Orders{
		catalog:  d.Catalog,
		ledger:   d.Ledger,
		locks:    locks,
		notifier: d.Notifier,
		orderSeq: d.OrderSeq,
		itemSeq:  d.ItemSeq,
		logger:   logging.OrNoop(d.Logger),
	}
}

// MakeNewOrder reserves stock for every spec, then creates the order and
// sends its items to the kitchen. Nothing is created when any item cannot
// be reserved. An empty spec list returns a nil order.
func (s *Orders) MakeNewOrder(tableNumber int, specs []string) (*restaurant.Order, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	items := make([]*restaurant.Item, 0, len(specs))
	reserved := make([]restaurant.Ingredients, 0, len(specs))
	rollback := func() {
		for _, r := range reserved {
			s.ledger.DeductFromReserved(r)
		}
	}

	for _, text := range specs {
		item, err := s.buildItem(text, 0, tableNumber)
		if err != nil {
			rollback()
			return nil, err
		}
		need := item.Needed()
		if !s.ledger.CheckNeeded(need, true) {
			rollback()
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, item.Name)
		}
		reserved = append(reserved, need)
		items = append(items, item)
	}

	order := restaurant.NewOrder(s.orderSeq.Next(), tableNumber)
	for _, item := range items {
		item.Number = s.itemSeq.Next()
		item.OrderNumber = order.Number
		item.SendToKitchen()
		order.AddItem(item)
	}

	s.catalog.Orders.Save(order)
	s.notifier.NotifyChange(order)
	for _, item := range order.Items {
		s.notifier.NotifyChange(item)
	}
	s.logger.Info("new order created", "order", order.Number, "table", tableNumber, "items", len(order.Items))
	return order, nil
}

// Open locks the order for editing by the caller. It fails with
// ErrOrderLocked while another session holds it.
func (s *Orders) Open(orderNumber int) (*Editor, error) {
	order, ok := s.catalog.Orders.GetActive(orderNumber)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrOrderNotFound, orderNumber)
	}
	if s.locks.IsLocked(order) {
		return nil, fmt.Errorf("%w: #%d", ErrOrderLocked, orderNumber)
	}
	s.locks.Lock(order)
	return &Editor{orders: s, orderNumber: orderNumber}, nil
}

// AddItem reserves stock for a new item and appends it to an open order.
func (s *Orders) AddItem(orderNumber int, spec string) (*restaurant.Item, error) {
	order, ok := s.catalog.Orders.GetActive(orderNumber)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrOrderNotFound, orderNumber)
	}
	item, err := s.buildItem(spec, order.Number, order.TableNumber)
	if err != nil {
		return nil, err
	}
	if !s.ledger.CheckNeeded(item.Needed(), true) {
		return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, item.Name)
	}

	item.Number = s.itemSeq.Next()
	order.AddItem(item)
	s.catalog.Items.Save(item)
	s.catalog.Orders.SaveRecord(order)

	s.notifier.NotifyChange(order)
	s.notifier.NotifyChange(item)
	s.logger.Info("item added", "order", order.Number, "item", item.Number, "name", item.Name)
	return item, nil
}

// EditItem replaces the customization of an item the kitchen has not seen.
// The old reservation is restored when the new one does not fit.
func (s *Orders) EditItem(itemNumber int, spec string) (*restaurant.Item, error) {
	item, ok := s.catalog.Items.Get(itemNumber)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrItemNotFound, itemNumber)
	}
	if item.IsSeen() {
		return nil, fmt.Errorf("%w: #%d", ErrItemSeen, itemNumber)
	}
	parsed, err := ParseItemSpec(spec)
	if err != nil {
		return nil, err
	}

	updated := item.Clone()
	if err := parsed.Apply(updated); err != nil {
		return nil, err
	}

	s.ledger.DeductFromReserved(item.Needed())
	if !s.ledger.CheckNeeded(updated.Needed(), true) {
		if !s.ledger.CheckNeeded(item.Needed(), true) {
			s.logger.Warn("could not restore reservation after failed edit", "item", itemNumber)
		}
		return nil, fmt.Errorf("%w for edit of %s", ErrInsufficientStock, item)
	}

	s.catalog.Items.Save(updated)
	if order, ok := s.catalog.Orders.GetActive(updated.OrderNumber); ok {
		s.notifier.NotifyChange(order)
	}
	s.notifier.NotifyChange(updated)
	s.logger.Info("item modified", "item", itemNumber)
	return updated, nil
}

// DeleteItem removes an item from its order. Stock the kitchen already
// started on is consumed; otherwise the reservation is released.
func (s *Orders) DeleteItem(itemNumber int) error {
	item, ok := s.catalog.Items.Get(itemNumber)
	if !ok {
		return fmt.Errorf("%w: #%d", ErrItemNotFound, itemNumber)
	}
	order, ok := s.catalog.Orders.GetActive(item.OrderNumber)
	if !ok {
		return fmt.Errorf("%w: #%d", ErrOrderNotFound, item.OrderNumber)
	}

	s.settleStock(item)
	order.RemoveItem(item.Number)
	s.catalog.Items.Delete(item.Number)
	s.catalog.Orders.SaveRecord(order)

	s.notifier.NotifyChange(order)
	s.notifier.NotifyChange(item)
	s.logger.Info("item deleted", "order", order.Number, "item", item.Number)
	return nil
}

// DeleteOrder removes an active order with all its items.
func (s *Orders) DeleteOrder(orderNumber int) error {
	order, ok := s.catalog.Orders.GetActive(orderNumber)
	if !ok {
		return fmt.Errorf("%w: #%d", ErrOrderNotFound, orderNumber)
	}

	items := order.Items
	for _, item := range items {
		s.settleStock(item)
	}
	s.catalog.Orders.Delete(order)
	for _, item := range items {
		s.notifier.NotifyChange(item)
	}
	order.Items = []*restaurant.Item{}
	s.notifier.NotifyChange(order)
	s.logger.Info("order deleted", "order", orderNumber)
	return nil
}

// ReturnItem sends a served item back to the kitchen with a reason.
func (s *Orders) ReturnItem(itemNumber int, reason string) error {
	item, ok := s.catalog.Items.Get(itemNumber)
	if !ok {
		return fmt.Errorf("%w: #%d", ErrItemNotFound, itemNumber)
	}
	if !item.IsServed() {
		return fmt.Errorf("%w: #%d", ErrItemNotServed, itemNumber)
	}
	if !s.ledger.CheckNeeded(item.Needed(), true) {
		return fmt.Errorf("%w to remake %s", ErrInsufficientStock, item)
	}

	item.AppendRequest(reason)
	item.ResetStatus()
	item.SendToKitchen()
	s.catalog.Items.Save(item)

	s.notifier.NotifyChange(item)
	if order, ok := s.catalog.Orders.GetActive(item.OrderNumber); ok {
		s.notifier.NotifyChange(order)
	}
	s.logger.Info("item returned", "order", item.OrderNumber, "item", item.Number, "reason", reason)
	return nil
}

// FinishOrder closes a paid order and archives it with its items. Items
// still waiting in the kitchen are settled like deleted ones.
func (s *Orders) FinishOrder(orderNumber int) error {
	order, ok := s.catalog.Orders.GetActive(orderNumber)
	if !ok {
		return fmt.Errorf("%w: #%d", ErrOrderNotFound, orderNumber)
	}
	for _, item := range order.Items {
		s.settleStock(item)
	}
	s.catalog.Orders.Finish(order)
	s.notifier.NotifyChange(order)
	s.logger.Info("order finished", "order", orderNumber)
	return nil
}

// Get returns an active or finished order.
func (s *Orders) Get(orderNumber int) (*restaurant.Order, error) {
	order, ok := s.catalog.Orders.Get(orderNumber)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrOrderNotFound, orderNumber)
	}
	return order, nil
}

func (s *Orders) List() []*restaurant.Order {
	return s.catalog.Orders.List()
}

// SearchByTable returns the active orders of a table.
func (s *Orders) SearchByTable(tableNumber int) []*restaurant.Order {
	var out []*restaurant.Order
	for _, o := range s.catalog.Orders.List() {
		if o.TableNumber == tableNumber {
			out = append(out, o)
		}
	}
	return out
}

func (s *Orders) buildItem(text string, orderNumber, tableNumber int) (*restaurant.Item, error) {
	spec, err := ParseItemSpec(text)
	if err != nil {
		return nil, err
	}
	tmpl, ok := s.catalog.Menu.Get(spec.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, spec.Name)
	}
	return spec.Build(tmpl, 0, orderNumber, tableNumber)
}

// settleStock releases the reservation of an unseen item and consumes the
// stock of one the kitchen started on. Ready items were consumed by Ready.
func (s *Orders) settleStock(item *restaurant.Item) {
	need := item.Needed()
	switch {
	case item.IsReady():
	case item.IsSeen():
		for _, sup := range s.ledger.DeductUsage(need) {
			s.notifier.NotifyChange(sup)
		}
	default:
		s.ledger.DeductFromReserved(need)
	}
}

// Editor is an order held under this station's lock.
type Editor struct {
	orders      *Orders
	orderNumber int
	closed      bool
}

func (e *Editor) OrderNumber() int {
	return e.orderNumber
}

func (e *Editor) AddItem(spec string) (*restaurant.Item, error) {
	if e.closed {
		return nil, ErrEditorClosed
	}
	return e.orders.AddItem(e.orderNumber, spec)
}

func (e *Editor) EditItem(itemNumber int, spec string) (*restaurant.Item, error) {
	if err := e.owns(itemNumber); err != nil {
		return nil, err
	}
	return e.orders.EditItem(itemNumber, spec)
}

func (e *Editor) DeleteItem(itemNumber int) error {
	if err := e.owns(itemNumber); err != nil {
		return err
	}
	return e.orders.DeleteItem(itemNumber)
}

func (e *Editor) ReturnItem(itemNumber int, reason string) error {
	if err := e.owns(itemNumber); err != nil {
		return err
	}
	return e.orders.ReturnItem(itemNumber, reason)
}

// Close releases the lock. It is safe to call more than once.
func (e *Editor) Close() {
	if e.closed {
		return
	}
	e.closed = true
	order, ok := e.orders.catalog.Orders.Get(e.orderNumber)
	if !ok {
		order = restaurant.NewOrder(e.orderNumber, 0)
	}
	e.orders.locks.Unlock(order)
}

func (e *Editor) owns(itemNumber int) error {
	if e.closed {
		return ErrEditorClosed
	}
	item, ok := e.orders.catalog.Items.Get(itemNumber)
	if !ok || item.OrderNumber != e.orderNumber {
		return fmt.Errorf("%w: #%d in order #%d", ErrItemNotFound, itemNumber, e.orderNumber)
	}
	return nil
}
