package floor

import (
	"errors"

	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/lock"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/supply"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrMenuItemExists    = errors.New("menu item already exists")
	ErrSupplyNotFound    = errors.New("supply not found")
	ErrSupplyExists      = errors.New("supply already exists")
	ErrInsufficientStock = errors.New("not enough supply")
	ErrOrderLocked       = errors.New("order is being edited by another station")
	ErrEditorClosed      = errors.New("order editor is closed")
	ErrItemSeen          = errors.New("kitchen is already preparing the item")
	ErrItemNotServed     = errors.New("only served items can be returned")
	ErrItemAlreadySeen   = errors.New("item was already acknowledged")
	ErrItemAlreadyReady  = errors.New("item is already ready")
	ErrItemNotReady      = errors.New("item is not ready")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidName       = errors.New("invalid name")
)

// Notifier publishes a changed entity to local listeners and sibling
// stations.
type Notifier interface {
	NotifyChange(e restaurant.Entity)
}

// Sequencer allocates entity numbers.
type Sequencer interface {
	Next() int
}

// Deps are the collaborators shared by the floor services.
type Deps struct {
	Catalog  *files.Catalog
	Ledger   *supply.Ledger
	Locks    *lock.Manager
	Notifier Notifier
	OrderSeq Sequencer
	ItemSeq  Sequencer
	Logger   logging.Logger
}

// Floor groups the domain actions a station exposes to its operators.
type Floor struct {
	Orders  *Orders
	Kitchen *Kitchen
	Menu    *Menu
	Stock   *Stock
	Locks   *Locks
	Status  *Status
}

func New(d Deps) *Floor {
	d.Logger = logging.OrNoop(d.Logger)
	locks := NewLocks(d.Locks, d.Notifier, d.Logger)
	return &Floor{
		Orders:  NewOrders(d, locks),
		Kitchen: NewKitchen(d),
		Menu:    NewMenu(d),
		Stock:   NewStock(d),
		Locks:   locks,
		Status:  NewStatus(d.Catalog, d.Locks),
	}
}
