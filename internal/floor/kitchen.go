package floor

import (
	"fmt"

	"github.com/appetiteclub/floorsync/internal/files"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/supply"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Kitchen covers the kitchen display and delivery actions.
type Kitchen struct {
	catalog  *files.Catalog
	ledger   *supply.Ledger
	notifier Notifier
	logger   logging.Logger
}

func NewKitchen(d Deps) *Kitchen {
	return &Kitchen{
		catalog:  d.Catalog,
		ledger:   d.Ledger,
		notifier: d.Notifier,
		logger:   logging.OrNoop(d.Logger),
	}
}

// Acknowledge marks an unseen item seen by the kitchen. Seen items can no
// longer be edited.
func (k *Kitchen) Acknowledge(orderNumber, itemNumber int) error {
	order, item, err := k.find(orderNumber, itemNumber)
	if err != nil {
		return err
	}
	if item.IsSeen() {
		return fmt.Errorf("%w: #%d is %s", ErrItemAlreadySeen, itemNumber, item.Status)
	}
	item.MarkSeen()
	k.catalog.Items.Save(item)

	k.notifier.NotifyChange(item)
	k.notifier.NotifyChange(order)
	k.logger.Info("item acknowledged", "order", orderNumber, "item", itemNumber)
	return nil
}

// Ready marks an item cooked, consumes its stock and refreshes restock
// requests.
func (k *Kitchen) Ready(orderNumber, itemNumber int) error {
	order, item, err := k.find(orderNumber, itemNumber)
	if err != nil {
		return err
	}
	if item.IsReady() {
		return fmt.Errorf("%w: #%d", ErrItemAlreadyReady, itemNumber)
	}

	item.MarkReady()
	k.catalog.Items.Save(item)
	supplies := k.ledger.DeductUsage(item.Needed())

	k.notifier.NotifyChange(item)
	for _, s := range supplies {
		k.notifier.NotifyChange(s)
	}
	k.notifier.NotifyChange(order)
	k.ledger.UpdateRequests()
	k.logger.Info("item ready for delivery", "order", orderNumber, "item", itemNumber)
	return nil
}

// ConfirmDelivery marks a ready item served.
func (k *Kitchen) ConfirmDelivery(itemNumber int) error {
	item, ok := k.catalog.Items.Get(itemNumber)
	if !ok {
		return fmt.Errorf("%w: #%d", ErrItemNotFound, itemNumber)
	}
	if !item.IsReady() {
		return fmt.Errorf("%w: #%d", ErrItemNotReady, itemNumber)
	}
	item.MarkServed()
	k.catalog.Items.Save(item)

	k.notifier.NotifyChange(item)
	if order, ok := k.catalog.Orders.GetActive(item.OrderNumber); ok {
		k.notifier.NotifyChange(order)
	}
	k.logger.Info("item delivered", "item", itemNumber, "table", item.TableNumber)
	return nil
}

// Pending returns items still being prepared.
func (k *Kitchen) Pending() []*restaurant.Item {
	var out []*restaurant.Item
	for _, item := range k.catalog.Items.List() {
		if item.InKitchen() && !item.IsReady() {
			out = append(out, item)
		}
	}
	return out
}

// ReadyItems returns items waiting at the front for delivery.
func (k *Kitchen) ReadyItems() []*restaurant.Item {
	var out []*restaurant.Item
	for _, item := range k.catalog.Items.List() {
		if item.IsReady() && !item.IsServed() {
			out = append(out, item)
		}
	}
	return out
}

func (k *Kitchen) find(orderNumber, itemNumber int) (*restaurant.Order, *restaurant.Item, error) {
	order, ok := k.catalog.Orders.GetActive(orderNumber)
	if !ok {
		return nil, nil, fmt.Errorf("%w: #%d", ErrOrderNotFound, orderNumber)
	}
	item := order.Item(itemNumber)
	if item == nil {
		return nil, nil, fmt.Errorf("%w: #%d in order #%d", ErrItemNotFound, itemNumber, orderNumber)
	}
	return order, item, nil
}
