package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/appetiteclub/floorsync/internal/config"
	"github.com/appetiteclub/floorsync/internal/lock"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/store"
	"github.com/appetiteclub/floorsync/pkg/logging"
)

func testConfig(t *testing.T) (*config.Config, *store.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Root = t.TempDir()
	s := store.New(cfg.Data.Root, logging.NewNoopLogger())
	if err := s.EnsureCollections(cfg.Collections()...); err != nil {
		t.Fatal(err)
	}
	return cfg, s
}

func TestClearLocks(t *testing.T) {
	cfg, s := testConfig(t)
	m := lock.NewManager(s, cfg.Paths.Locks, nil)
	m.Lock(restaurant.NewOrder(1000, 1))
	m.Lock(restaurant.NewOrder(1001, 2))

	if n := ClearLocks(cfg, logging.NewNoopLogger()); n != 2 {
		t.Errorf("ClearLocks() = %d, want 2", n)
	}
	if held := m.Held(); len(held) != 0 {
		t.Errorf("locks left: %v", held)
	}
}

func TestPruneMailboxes(t *testing.T) {
	cfg, s := testConfig(t)
	for _, id := range []string{"alive", "dead-1", "dead-2"} {
		if err := s.EnsureCollections(filepath.Join(cfg.Paths.Mailboxes, id)); err != nil {
			t.Fatal(err)
		}
	}

	removed := PruneMailboxes(cfg, []string{"alive"}, logging.NewNoopLogger())
	sort.Strings(removed)

	if want := []string{"dead-1", "dead-2"}; !reflect.DeepEqual(removed, want) {
		t.Errorf("removed = %v, want %v", removed, want)
	}
	if got := s.ListDirs(cfg.Paths.Mailboxes); !reflect.DeepEqual(got, []string{"alive"}) {
		t.Errorf("mailboxes left = %v", got)
	}
}

func TestPrintRequests(t *testing.T) {
	cfg, s := testConfig(t)
	s.Save(cfg.Paths.Stock, "Cheese", []byte(`{"name":"Cheese","quantity":10,"threshold":20,"request_amount":20}`))
	s.Save(cfg.Paths.Stock, "Bun", []byte(`{"name":"Bun","quantity":30,"threshold":20,"request_amount":20}`))

	var out bytes.Buffer
	requests, err := PrintRequests(cfg, &out, logging.NewNoopLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(requests) != 1 {
		t.Fatalf("requests = %v", requests)
	}
	if out.String() != "Cheese: 20\n" {
		t.Errorf("output = %q", out.String())
	}
	data, err := os.ReadFile(filepath.Join(cfg.Data.Root, cfg.Paths.Requests))
	if err != nil || string(data) != "Cheese: 20\n" {
		t.Errorf("requests file = %q, %v", data, err)
	}
}

func TestSeedDemoIsRepeatable(t *testing.T) {
	cfg, _ := testConfig(t)
	ctx := context.Background()

	first, err := SeedDemo(ctx, cfg, logging.NewNoopLogger())
	if err != nil {
		t.Fatal(err)
	}
	if first.Templates == 0 || first.Supplies == 0 {
		t.Errorf("first run created %+v", first)
	}

	second, err := SeedDemo(ctx, cfg, logging.NewNoopLogger())
	if err != nil {
		t.Fatal(err)
	}
	if second.Templates != 0 || second.Supplies != 0 {
		t.Errorf("second run created %+v, want nothing", second)
	}
}

func TestTailFeedRequiresURL(t *testing.T) {
	cfg, _ := testConfig(t)
	if err := TailFeed(context.Background(), cfg, &bytes.Buffer{}, logging.NewNoopLogger()); err == nil {
		t.Error("TailFeed() expected error without URL")
	}
}
