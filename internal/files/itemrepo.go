package files

import (
	"sort"
	"strconv"

	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// ItemRepo persists ordered items by number, split between the active and
// finished collections.
type ItemRepo struct {
	*BaseRepo
}

func NewItemRepo(base *BaseRepo) *ItemRepo {
	return &ItemRepo{BaseRepo: base}
}

func (r *ItemRepo) Save(item *restaurant.Item) {
	r.save(r.cols.Items, item.Key(), item)
}

// Get returns an active item.
func (r *ItemRepo) Get(number int) (*restaurant.Item, bool) {
	return r.getFrom(r.cols.Items, number)
}

func (r *ItemRepo) GetFinished(number int) (*restaurant.Item, bool) {
	return r.getFrom(r.cols.FinishedItems, number)
}

func (r *ItemRepo) Exists(number int) bool {
	return r.store.Exists(r.cols.Items, strconv.Itoa(number))
}

func (r *ItemRepo) Delete(number int) {
	r.store.Delete(r.cols.Items, strconv.Itoa(number))
}

// Finish moves the item into the finished collection.
func (r *ItemRepo) Finish(item *restaurant.Item) {
	if data, ok := r.encode(item); ok {
		r.store.Move(r.cols.Items, r.cols.FinishedItems, item.Key(), data)
	}
}

// List returns every active item ordered by number.
func (r *ItemRepo) List() []*restaurant.Item {
	keys := r.store.List(r.cols.Items)
	items := make([]*restaurant.Item, 0, len(keys))
	for _, key := range keys {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if item, ok := r.Get(n); ok {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items
}

func (r *ItemRepo) getFrom(collection string, number int) (*restaurant.Item, bool) {
	var item restaurant.Item
	if !r.load(collection, strconv.Itoa(number), &item) {
		return nil, false
	}
	return &item, true
}
