package files

import (
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Catalog bundles the typed repos over one store.
type Catalog struct {
	Orders   *OrderRepo
	Items    *ItemRepo
	Menu     *MenuRepo
	Supplies *SupplyRepo
	base     *BaseRepo
}

func NewCatalog(s *store.Store, cols Collections, logger logging.Logger) *Catalog {
	base := NewBaseRepo(s, cols, logger)
	items := NewItemRepo(base)
	return &Catalog{
		Orders:   NewOrderRepo(base, items),
		Items:    items,
		Menu:     NewMenuRepo(base),
		Supplies: NewSupplyRepo(base),
		base:     base,
	}
}

// CollectionNames lists every directory the repos read or write.
func (c *Catalog) CollectionNames() []string {
	cols := c.base.cols
	names := []string{cols.Orders, cols.FinishedOrders, cols.Items, cols.FinishedItems, cols.Stock}
	return append(names, c.Menu.KindCollections()...)
}

// Exists reports whether the entity still has an active record. Finished
// orders and items count as gone.
func (c *Catalog) Exists(e restaurant.Entity) bool {
	cols := c.base.cols
	switch e.Category() {
	case restaurant.CategoryOrder:
		return c.base.store.Exists(cols.Orders, e.Key())
	case restaurant.CategoryOrderItem:
		return c.base.store.Exists(cols.Items, e.Key())
	case restaurant.CategoryMenuItem:
		return c.Menu.Exists(e.Key())
	case restaurant.CategorySupply:
		return c.Supplies.Exists(e.Key())
	default:
		return false
	}
}

func (c *Catalog) ListOrders() []*restaurant.Order {
	return c.Orders.List()
}

func (c *Catalog) ListMenu() []*restaurant.Item {
	return c.Menu.List()
}

func (c *Catalog) ListSupplies() []*restaurant.Supply {
	return c.Supplies.List()
}
