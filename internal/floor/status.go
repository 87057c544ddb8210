package floor

import (
	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/lock"
	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// Status answers the questions screens ask before enabling an action.
type Status struct {
	catalog *files.Catalog
	locks   *lock.Manager
}

func NewStatus(c *files.Catalog, locks *lock.Manager) *Status {
	return &Status{catalog: c, locks: locks}
}

// IsEditableOrder reports whether the order exists and nobody holds its
// lock.
func (s *Status) IsEditableOrder(orderNumber int) bool {
	order, ok := s.catalog.Orders.GetActive(orderNumber)
	if !ok {
		return false
	}
	return !s.locks.IsLocked(order)
}

func (s *Status) IsReadyOrder(orderNumber int) bool {
	order, ok := s.catalog.Orders.Get(orderNumber)
	return ok && order.IsReady()
}

func (s *Status) IsSeenOrder(orderNumber int) bool {
	order, ok := s.catalog.Orders.Get(orderNumber)
	return ok && order.IsSeen()
}

// IsDeletedOrder reports whether the order is no longer active. Finished
// orders count as deleted.
func (s *Status) IsDeletedOrder(order *restaurant.Order) bool {
	return !s.catalog.Exists(order)
}

func (s *Status) IsDeletedItem(item *restaurant.Item) bool {
	return !s.catalog.Exists(item)
}

func (s *Status) IsEmptyOrder(order *restaurant.Order) bool {
	return order.IsEmpty()
}

func (s *Status) IsMenuItem(item *restaurant.Item) bool {
	return item.IsTemplate()
}
