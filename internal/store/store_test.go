package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/appetiteclub/floorsync/pkg/logging"
)

func newTestStore(t *testing.T, collections ...string) *Store {
	t.Helper()
	s := New(t.TempDir(), logging.NewNoopLogger())
	if err := s.EnsureCollections(collections...); err != nil {
		t.Fatalf("EnsureCollections() error = %v", err)
	}
	return s
}

func TestStoreSaveLoad(t *testing.T) {
	s := newTestStore(t, "Orders")

	s.Save("Orders", "1000", []byte("first"))
	s.Save("Orders", "1000", []byte("second"))

	got, ok := s.Load("Orders", "1000")
	if !ok {
		t.Fatal("Load() reported missing record")
	}
	if string(got) != "second" {
		t.Errorf("Load() = %q, want overwrite %q", got, "second")
	}
	if !s.Exists("Orders", "1000") {
		t.Error("Exists() = false after Save()")
	}
}

func TestStoreMissingIsAbsent(t *testing.T) {
	s := newTestStore(t, "Orders")

	tests := []struct {
		name       string
		collection string
		key        string
	}{
		{name: "missingKey", collection: "Orders", key: "9999"},
		{name: "missingCollection", collection: "Nowhere", key: "1"},
		{name: "separatorInKey", collection: "Orders", key: "../etc"},
		{name: "emptyKey", collection: "Orders", key: ""},
		{name: "escapingCollection", collection: "../outside", key: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := s.Load(tt.collection, tt.key); ok {
				t.Error("Load() reported present")
			}
			if s.Exists(tt.collection, tt.key) {
				t.Error("Exists() = true")
			}
			// Must not panic or create anything.
			s.Delete(tt.collection, tt.key)
		})
	}
}

func TestStoreSaveIntoMissingCollectionIsSwallowed(t *testing.T) {
	s := newTestStore(t)

	s.Save("Gone", "1", []byte("x"))

	if _, err := os.Stat(filepath.Join(s.Root(), "Gone")); !os.IsNotExist(err) {
		t.Errorf("Save() created the collection directory, stat err = %v", err)
	}
}

func TestStoreListSkipsHiddenAndDirs(t *testing.T) {
	s := newTestStore(t, "UpdateFiles/a", "UpdateFiles/b")

	s.Save("UpdateFiles", "2", []byte("x"))
	s.Save("UpdateFiles", "1", []byte("x"))
	if err := os.WriteFile(filepath.Join(s.Dir("UpdateFiles"), ".partial"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got, want := s.List("UpdateFiles"), []string{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if got, want := s.ListDirs("UpdateFiles"), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListDirs() = %v, want %v", got, want)
	}
}

func TestStoreSaveAtomic(t *testing.T) {
	s := newTestStore(t, "UpdateFiles/a")

	s.SaveAtomic("UpdateFiles/a", "order-1000", []byte(`{"v":1}`))
	s.SaveAtomic("UpdateFiles/a", "order-1000", []byte(`{"v":2}`))

	got, ok := s.Load("UpdateFiles/a", "order-1000")
	if !ok || string(got) != `{"v":2}` {
		t.Errorf("Load() = %q, %v", got, ok)
	}
	entries, err := os.ReadDir(s.Dir("UpdateFiles/a"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestStoreMove(t *testing.T) {
	s := newTestStore(t, "Orders", "FinishedOrders")
	s.Save("Orders", "1000", []byte("open"))

	s.Move("Orders", "FinishedOrders", "1000", []byte("paid"))

	if s.Exists("Orders", "1000") {
		t.Error("record still in source collection")
	}
	if got, ok := s.Load("FinishedOrders", "1000"); !ok || string(got) != "paid" {
		t.Errorf("Load(FinishedOrders) = %q, %v", got, ok)
	}
}

func TestStoreMoveKeepsSourceWhenTargetFails(t *testing.T) {
	s := newTestStore(t, "Orders")
	s.Save("Orders", "1000", []byte("open"))

	s.Move("Orders", "FinishedOrders", "1000", []byte("paid"))

	if got, ok := s.Load("Orders", "1000"); !ok || string(got) != "open" {
		t.Errorf("Load(Orders) = %q, %v, want source kept", got, ok)
	}
	if s.Exists("FinishedOrders", "1000") {
		t.Error("record written to missing collection")
	}
}

func TestStoreRemoveCollection(t *testing.T) {
	s := newTestStore(t, "UpdateFiles/a")
	s.Save("UpdateFiles/a", "x", []byte("x"))

	s.RemoveCollection("UpdateFiles/a")
	s.RemoveCollection("")

	if _, err := os.Stat(s.Dir("UpdateFiles/a")); !os.IsNotExist(err) {
		t.Errorf("collection still present, stat err = %v", err)
	}
	if _, err := os.Stat(s.Root()); err != nil {
		t.Errorf("root removed: %v", err)
	}
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{key: "1000"},
		{key: "Mac and Cheese"},
		{key: "order-1000"},
		{key: "", wantErr: true},
		{key: "..", wantErr: true},
		{key: "a/b", wantErr: true},
		{key: `a\b`, wantErr: true},
		{key: ".hidden", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := ValidKey(tt.key); (err != nil) != tt.wantErr {
				t.Errorf("ValidKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
