package floor

import (
	"fmt"

	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/internal/supply"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Stock covers supply intake and the manager's restock settings.
type Stock struct {
	catalog  *files.Catalog
	ledger   *supply.Ledger
	notifier Notifier
	logger   logging.Logger
}

func NewStock(d Deps) *Stock {
	return &Stock{
		catalog:  d.Catalog,
		ledger:   d.Ledger,
		notifier: d.Notifier,
		logger:   logging.OrNoop(d.Logger),
	}
}

// Create registers a new supply with the default threshold and request
// amount.
func (s *Stock) Create(name string, quantity int) (*restaurant.Supply, error) {
	if err := store.ValidKey(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if s.catalog.Supplies.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrSupplyExists, name)
	}
	sup := restaurant.NewSupply(name, quantity)
	s.persist(sup)
	s.logger.Info("supply created", "supply", name, "quantity", quantity)
	return sup, nil
}

// AddQuantity records a delivery.
func (s *Stock) AddQuantity(name string, quantity int) (*restaurant.Supply, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	sup, err := s.get(name)
	if err != nil {
		return nil, err
	}
	sup.Quantity += quantity
	s.persist(sup)
	s.logger.Info("supply received", "supply", name, "quantity", quantity, "stock", sup.Quantity)
	return sup, nil
}

func (s *Stock) EditRequestAmount(name string, amount int) (*restaurant.Supply, error) {
	if amount <= 0 {
		return nil, ErrInvalidQuantity
	}
	sup, err := s.get(name)
	if err != nil {
		return nil, err
	}
	sup.RequestAmount = amount
	s.persist(sup)
	return sup, nil
}

func (s *Stock) EditThreshold(name string, threshold int) (*restaurant.Supply, error) {
	if threshold < 0 {
		return nil, ErrInvalidQuantity
	}
	sup, err := s.get(name)
	if err != nil {
		return nil, err
	}
	sup.Threshold = threshold
	s.persist(sup)
	return sup, nil
}

func (s *Stock) Get(name string) (*restaurant.Supply, error) {
	return s.get(name)
}

func (s *Stock) List() []*restaurant.Supply {
	return s.catalog.Supplies.List()
}

// HaveEnough checks stock for an item, reserving it when asked.
func (s *Stock) HaveEnough(item *restaurant.Item, reserve bool) bool {
	return s.ledger.CheckNeeded(item.Needed(), reserve)
}

// HaveEnoughSpec checks stock for an item spec against its menu template.
func (s *Stock) HaveEnoughSpec(text string, reserve bool) (bool, error) {
	spec, err := ParseItemSpec(text)
	if err != nil {
		return false, err
	}
	tmpl, ok := s.catalog.Menu.Get(spec.Name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrMenuItemNotFound, spec.Name)
	}
	item, err := spec.Build(tmpl, 0, 0, 0)
	if err != nil {
		return false, err
	}
	return s.HaveEnough(item, reserve), nil
}

// CancelReserved releases the reservation held for an item.
func (s *Stock) CancelReserved(item *restaurant.Item) {
	s.ledger.DeductFromReserved(item.Needed())
}

func (s *Stock) Reserved() restaurant.Ingredients {
	return s.ledger.Reserved()
}

// Requests returns the restock lines currently on file.
func (s *Stock) Requests() []supply.Request {
	return s.ledger.Requests()
}

func (s *Stock) get(name string) (*restaurant.Supply, error) {
	sup, ok := s.catalog.Supplies.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSupplyNotFound, name)
	}
	return sup, nil
}

func (s *Stock) persist(sup *restaurant.Supply) {
	s.catalog.Supplies.Save(sup)
	s.ledger.UpdateRequests()
	s.notifier.NotifyChange(sup)
}
