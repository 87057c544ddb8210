package store

import (
	"strconv"
	"strings"
	"sync"

	"github.com/appetiteclub/floorsync/pkg/logging"
)

// Sequence hands out increasing integers persisted as a single decimal
// number in one file. The read-modify-write is serialized inside one process
// only; stations sharing a root must not allocate from the same counter
// concurrently.
type Sequence struct {
	mu         sync.Mutex
	store      *Store
	collection string
	key        string
	initial    int
	logger     logging.Logger
}

func NewSequence(s *Store, collection, key string, initial int, logger logging.Logger) *Sequence {
	return &Sequence{
		store:      s,
		collection: collection,
		key:        key,
		initial:    initial,
		logger:     logging.OrNoop(logger),
	}
}

// Next returns the stored value and persists value+1. A missing or
// unreadable counter restarts from the initial value.
func (q *Sequence) Next() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	current := q.currentLocked()
	q.store.Save(q.collection, q.key, []byte(strconv.Itoa(current+1)))
	return current
}

// Current returns the value Next would hand out without consuming it.
func (q *Sequence) Current() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.currentLocked()
}

// Reset writes the initial value back.
func (q *Sequence) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.store.Save(q.collection, q.key, []byte(strconv.Itoa(q.initial)))
}

func (q *Sequence) currentLocked() int {
	data, ok := q.store.Load(q.collection, q.key)
	if !ok {
		return q.initial
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		q.logger.Warn("malformed sequence counter, restarting", "key", q.key, "error", err)
		return q.initial
	}
	return n
}
