package files

import (
	"encoding/json"

	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Collections names the store directories the repos use.
type Collections struct {
	Orders         string
	FinishedOrders string
	Items          string
	FinishedItems  string
	Menu           string // parent of one sub-directory per menu kind
	Stock          string
}

// BaseRepo holds the JSON plumbing shared by every typed repo.
type BaseRepo struct {
	store  *store.Store
	cols   Collections
	logger logging.Logger
}

func NewBaseRepo(s *store.Store, cols Collections, logger logging.Logger) *BaseRepo {
	return &BaseRepo{store: s, cols: cols, logger: logging.OrNoop(logger)}
}

func (r *BaseRepo) Store() *store.Store {
	return r.store
}

func (r *BaseRepo) Collections() Collections {
	return r.cols
}

func (r *BaseRepo) encode(v any) ([]byte, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("cannot encode record", "error", err)
		return nil, false
	}
	return data, true
}

func (r *BaseRepo) save(collection, key string, v any) {
	if data, ok := r.encode(v); ok {
		r.store.Save(collection, key, data)
	}
}

// load decodes a record into v. Missing and malformed records both report
// false.
func (r *BaseRepo) load(collection, key string, v any) bool {
	data, ok := r.store.Load(collection, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.logger.Error("malformed record", "collection", collection, "key", key, "error", err)
		return false
	}
	return true
}
