package feed

import (
	"context"
	"testing"
	"time"

	"github.com/appetiteclub/floorsync/internal/broadcast"
	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/pkg/event"
)

func TestOpenDisabledWithoutURL(t *testing.T) {
	f, err := Open(context.Background(), config.Feed{}, "station", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if f != nil {
		t.Error("Open() without URL should return nil feed")
	}
}

func TestOpenFailsOnUnreachableServer(t *testing.T) {
	cfg := config.Feed{NATS: config.NATS{URL: "nats://127.0.0.1:1"}}
	if _, err := Open(context.Background(), cfg, "station", nil); err == nil {
		t.Error("Open() expected connection error")
	}
}

func TestHandler(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := broadcast.Encode("station-a", restaurant.NewSupply("Cheese", 4), at)
	if err != nil {
		t.Fatal(err)
	}

	var got restaurant.Entity
	var env event.Snapshot
	h := Handler(func(e restaurant.Entity, s event.Snapshot) {
		got, env = e, s
	})

	if err := h(context.Background(), data); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if restaurant.RefOf(got) != "supply-Cheese" || env.Origin != "station-a" {
		t.Errorf("decoded %v from %q", restaurant.RefOf(got), env.Origin)
	}
	if err := h(context.Background(), []byte("{")); err == nil {
		t.Error("handler accepted malformed data")
	}
}
