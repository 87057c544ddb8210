package files

import (
	"sort"
	"strconv"

	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// orderRecord is the on-disk order. Items are stored on their own and
// referenced by number.
type orderRecord struct {
	Number      int   `json:"number"`
	TableNumber int   `json:"table_number"`
	Finished    bool  `json:"finished"`
	Items       []int `json:"items"`
}

type OrderRepo struct {
	*BaseRepo
	items *ItemRepo
}

func NewOrderRepo(base *BaseRepo, items *ItemRepo) *OrderRepo {
	return &OrderRepo{BaseRepo: base, items: items}
}

// Save persists the order record and every item it holds.
func (r *OrderRepo) Save(o *restaurant.Order) {
	for _, item := range o.Items {
		r.items.Save(item)
	}
	r.save(r.cols.Orders, o.Key(), toRecord(o))
}

// SaveRecord persists only the order record.
func (r *OrderRepo) SaveRecord(o *restaurant.Order) {
	r.save(r.cols.Orders, o.Key(), toRecord(o))
}

// Get looks in active orders first, then finished ones.
func (r *OrderRepo) Get(number int) (*restaurant.Order, bool) {
	if o, ok := r.GetActive(number); ok {
		return o, true
	}
	return r.getFrom(r.cols.FinishedOrders, number, true)
}

func (r *OrderRepo) GetActive(number int) (*restaurant.Order, bool) {
	return r.getFrom(r.cols.Orders, number, false)
}

func (r *OrderRepo) Exists(number int) bool {
	return r.store.Exists(r.cols.Orders, strconv.Itoa(number))
}

func (r *OrderRepo) ExistsFinished(number int) bool {
	return r.store.Exists(r.cols.FinishedOrders, strconv.Itoa(number))
}

// Delete removes the order and its items.
func (r *OrderRepo) Delete(o *restaurant.Order) {
	for _, item := range o.Items {
		r.items.Delete(item.Number)
	}
	r.store.Delete(r.cols.Orders, o.Key())
}

// Finish marks the order paid and moves it and its items to the finished
// collections.
func (r *OrderRepo) Finish(o *restaurant.Order) {
	o.Finished = true
	for _, item := range o.Items {
		r.items.Finish(item)
	}
	if data, ok := r.encode(toRecord(o)); ok {
		r.store.Move(r.cols.Orders, r.cols.FinishedOrders, o.Key(), data)
	}
}

// List returns the active orders by number.
func (r *OrderRepo) List() []*restaurant.Order {
	return r.listFrom(r.cols.Orders, false)
}

func (r *OrderRepo) ListFinished() []*restaurant.Order {
	return r.listFrom(r.cols.FinishedOrders, true)
}

func (r *OrderRepo) listFrom(collection string, finished bool) []*restaurant.Order {
	keys := r.store.List(collection)
	orders := make([]*restaurant.Order, 0, len(keys))
	for _, key := range keys {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if o, ok := r.getFrom(collection, n, finished); ok {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Number < orders[j].Number })
	return orders
}

func (r *OrderRepo) getFrom(collection string, number int, finished bool) (*restaurant.Order, bool) {
	var rec orderRecord
	if !r.load(collection, strconv.Itoa(number), &rec) {
		return nil, false
	}
	o := &restaurant.Order{
		Number:      rec.Number,
		TableNumber: rec.TableNumber,
		Finished:    rec.Finished,
		Items:       make([]*restaurant.Item, 0, len(rec.Items)),
	}
	for _, n := range rec.Items {
		var (
			item *restaurant.Item
			ok   bool
		)
		if finished {
			item, ok = r.items.GetFinished(n)
		} else {
			item, ok = r.items.Get(n)
		}
		if !ok {
			r.logger.Warn("order references missing item", "order", rec.Number, "item", n)
			continue
		}
		o.Items = append(o.Items, item)
	}
	return o, true
}

func toRecord(o *restaurant.Order) orderRecord {
	return orderRecord{
		Number:      o.Number,
		TableNumber: o.TableNumber,
		Finished:    o.Finished,
		Items:       o.ItemNumbers(),
	}
}
