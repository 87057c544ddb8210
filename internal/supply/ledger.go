package supply

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Repository gives the ledger access to stocked supplies.
type Repository interface {
	Get(name string) (*restaurant.Supply, bool)
	Save(s *restaurant.Supply)
	List() []*restaurant.Supply
}

// File locates a single file inside the store.
type File struct {
	Collection string
	Key        string
}

// Request is one restock line.
type Request struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func (r Request) String() string {
	return fmt.Sprintf("%s: %d", r.Name, r.Quantity)
}

// Ledger tracks ingredient quantities promised to orders the kitchen has not
// cooked yet, so two stations composing orders do not both spend the same
// stock. Reservations live in a shared file; the read-merge-write is
// serialized inside one process only.
type Ledger struct {
	mu       sync.Mutex
	store    *store.Store
	supplies Repository
	reserved File
	requests File
	logger   logging.Logger
}

func NewLedger(s *store.Store, supplies Repository, reserved, requests File, logger logging.Logger) *Ledger {
	return &Ledger{
		store:    s,
		supplies: supplies,
		reserved: reserved,
		requests: requests,
		logger:   logging.OrNoop(logger),
	}
}

// CheckNeeded reports whether stock covers the requested ingredients on top
// of everything already reserved. It stops at the first short ingredient.
// With reserve set, a successful check adds the request to the ledger; a
// failed check or reserve=false never touches it.
func (l *Ledger) CheckNeeded(ingredients restaurant.Ingredients, reserve bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	reserved := l.readLocked()
	for _, name := range ingredients.Names() {
		s, ok := l.supplies.Get(name)
		if !ok {
			l.logger.Debug("no supply record", "supply", name)
			return false
		}
		if s.Quantity < ingredients[name]+reserved[name] {
			return false
		}
	}

	if reserve {
		l.writeLocked(reserved.Merge(ingredients))
	}
	return true
}

// DeductFromReserved releases a reservation without touching stock.
func (l *Ledger) DeductFromReserved(ingredients restaurant.Ingredients) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releaseLocked(ingredients)
}

// DeductUsage releases the reservation and removes the quantities from
// stock. Stock may go negative. It returns the updated supplies so callers
// can broadcast them.
func (l *Ledger) DeductUsage(ingredients restaurant.Ingredients) []*restaurant.Supply {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.releaseLocked(ingredients)

	updated := make([]*restaurant.Supply, 0, len(ingredients))
	for _, name := range ingredients.Names() {
		s, ok := l.supplies.Get(name)
		if !ok {
			l.logger.Warn("used ingredient has no supply record", "supply", name)
			continue
		}
		s.Quantity -= ingredients[name]
		l.supplies.Save(s)
		updated = append(updated, s)
	}
	return updated
}

// Reserved returns a copy of the current reservations.
func (l *Ledger) Reserved() restaurant.Ingredients {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readLocked()
}

// UpdateRequests recomputes restock requests for every supply below its
// threshold, rewrites the requests file and returns the lines written.
func (l *Ledger) UpdateRequests() []Request {
	supplies := l.supplies.List()
	sort.Slice(supplies, func(i, j int) bool { return supplies[i].Name < supplies[j].Name })

	requests := make([]Request, 0)
	lines := make([]string, 0)
	for _, s := range supplies {
		if s.RequestAmount <= 0 {
			if s.Quantity < s.Threshold {
				l.logger.Warn("supply below threshold has no request amount", "supply", s.Name)
			}
			continue
		}
		need := s.RequestNeeded()
		if need == 0 {
			continue
		}
		r := Request{Name: s.Name, Quantity: need}
		requests = append(requests, r)
		lines = append(lines, r.String())
	}

	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	l.store.Save(l.requests.Collection, l.requests.Key, []byte(content))
	return requests
}

// Requests reads back the requests file.
func (l *Ledger) Requests() []Request {
	data, ok := l.store.Load(l.requests.Collection, l.requests.Key)
	if !ok {
		return nil
	}
	var out []Request
	for _, line := range strings.Split(string(data), "\n") {
		name, qty, ok := strings.Cut(strings.TrimSpace(line), ": ")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			continue
		}
		out = append(out, Request{Name: name, Quantity: n})
	}
	return out
}

func (l *Ledger) releaseLocked(ingredients restaurant.Ingredients) {
	reserved := l.readLocked()
	for name, q := range ingredients {
		left := reserved[name] - q
		if left < 0 {
			l.logger.Warn("reservation ledger underflow, clamping to zero",
				"supply", name, "reserved", reserved[name], "released", q)
			left = 0
		}
		reserved[name] = left
	}
	l.writeLocked(reserved)
}

func (l *Ledger) readLocked() restaurant.Ingredients {
	out := restaurant.Ingredients{}
	data, ok := l.store.Load(l.reserved.Collection, l.reserved.Key)
	if !ok {
		return out
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.LastIndex(line, ",")
		if idx <= 0 {
			l.logger.Warn("malformed reservation line", "line", line)
			continue
		}
		q, err := strconv.Atoi(strings.TrimSpace(line[idx+1:]))
		if err != nil {
			l.logger.Warn("malformed reservation quantity", "line", line, "error", err)
			continue
		}
		if q < 0 {
			l.logger.Warn("negative reservation ignored", "line", line)
			continue
		}
		out[line[:idx]] += q
	}
	return out
}

// writeLocked persists only positive quantities.
func (l *Ledger) writeLocked(reserved restaurant.Ingredients) {
	lines := make([]string, 0, len(reserved))
	for _, name := range reserved.Names() {
		if q := reserved[name]; q > 0 {
			lines = append(lines, name+","+strconv.Itoa(q))
		}
	}
	l.store.Save(l.reserved.Collection, l.reserved.Key, []byte(strings.Join(lines, "\n")))
}
