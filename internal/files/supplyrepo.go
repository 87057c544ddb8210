package files

import (
	"sort"

	"github.com/appetiteclub/floorsync/internal/restaurant"
)

// SupplyRepo persists stock records by supply name.
type SupplyRepo struct {
	*BaseRepo
}

func NewSupplyRepo(base *BaseRepo) *SupplyRepo {
	return &SupplyRepo{BaseRepo: base}
}

func (r *SupplyRepo) Save(s *restaurant.Supply) {
	r.save(r.cols.Stock, s.Key(), s)
}

func (r *SupplyRepo) Get(name string) (*restaurant.Supply, bool) {
	var s restaurant.Supply
	if !r.load(r.cols.Stock, name, &s) {
		return nil, false
	}
	return &s, true
}

func (r *SupplyRepo) Exists(name string) bool {
	return r.store.Exists(r.cols.Stock, name)
}

func (r *SupplyRepo) List() []*restaurant.Supply {
	names := r.store.List(r.cols.Stock)
	out := make([]*restaurant.Supply, 0, len(names))
	for _, name := range names {
		if s, ok := r.Get(name); ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
