package files

import (
	"path"
	"sort"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg/enums/menukind"
)

// MenuRepo persists menu templates by name under one sub-directory per kind.
type MenuRepo struct {
	*BaseRepo
}

func NewMenuRepo(base *BaseRepo) *MenuRepo {
	return &MenuRepo{BaseRepo: base}
}

// KindCollections returns the per-kind collections, for directory setup.
func (r *MenuRepo) KindCollections() []string {
	out := make([]string, 0, len(menukind.All))
	for _, k := range menukind.All {
		out = append(out, r.kindCollection(k))
	}
	return out
}

// Save writes the template into its kind and removes copies filed under
// another kind.
func (r *MenuRepo) Save(tmpl *restaurant.Item) {
	target := r.collectionFor(tmpl.Kind)
	for _, c := range r.KindCollections() {
		if c != target {
			r.store.Delete(c, tmpl.Key())
		}
	}
	r.save(target, tmpl.Key(), tmpl)
}

func (r *MenuRepo) Get(name string) (*restaurant.Item, bool) {
	for _, c := range r.KindCollections() {
		var tmpl restaurant.Item
		if r.load(c, name, &tmpl) {
			return &tmpl, true
		}
	}
	return nil, false
}

func (r *MenuRepo) Exists(name string) bool {
	for _, c := range r.KindCollections() {
		if r.store.Exists(c, name) {
			return true
		}
	}
	return false
}

func (r *MenuRepo) Delete(name string) {
	for _, c := range r.KindCollections() {
		r.store.Delete(c, name)
	}
}

// List returns every template sorted by name.
func (r *MenuRepo) List() []*restaurant.Item {
	var out []*restaurant.Item
	for _, c := range r.KindCollections() {
		for _, name := range r.store.List(c) {
			var tmpl restaurant.Item
			if r.load(c, name, &tmpl) {
				out = append(out, &tmpl)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *MenuRepo) collectionFor(kind string) string {
	k := menukind.Kinds.Food
	if found := menukind.ByName(kind); found != nil {
		k = *found
	}
	return r.kindCollection(k)
}

func (r *MenuRepo) kindCollection(k menukind.Kind) string {
	return path.Join(r.cols.Menu, k.Dir())
}
