package broadcast

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg/event"
)

// Encode wraps a full entity snapshot in the mailbox envelope.
func Encode(origin string, e restaurant.Entity, at time.Time) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %s: %w", restaurant.RefOf(e), err)
	}
	return json.Marshal(event.Snapshot{
		EventType:  event.EventEntitySnapshot,
		OccurredAt: at.UTC(),
		Origin:     origin,
		Category:   e.Category().Code(),
		Ref:        restaurant.RefOf(e),
		Payload:    payload,
	})
}

// Decode restores the entity carried by an envelope.
func Decode(data []byte) (restaurant.Entity, event.Snapshot, error) {
	var env event.Snapshot
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, env, fmt.Errorf("cannot decode snapshot envelope: %w", err)
	}
	c, ok := restaurant.CategoryByCode(env.Category)
	if !ok {
		return nil, env, fmt.Errorf("snapshot %q has unknown category %q", env.Ref, env.Category)
	}

	var (
		e   restaurant.Entity
		err error
	)
	switch c {
	case restaurant.CategoryOrder:
		o := &restaurant.Order{}
		err = json.Unmarshal(env.Payload, o)
		e = o
	case restaurant.CategoryOrderItem, restaurant.CategoryMenuItem:
		i := &restaurant.Item{}
		err = json.Unmarshal(env.Payload, i)
		e = i
	case restaurant.CategorySupply:
		s := &restaurant.Supply{}
		err = json.Unmarshal(env.Payload, s)
		e = s
	}
	if err != nil {
		return nil, env, fmt.Errorf("cannot decode %s payload: %w", env.Ref, err)
	}
	if e.Category() != c {
		return nil, env, fmt.Errorf("snapshot %q payload is a %v, envelope says %v", env.Ref, e.Category(), c)
	}
	return e, env, nil
}
