package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/appetiteclub/floorsync/pkg/logging"
)

const tempPrefix = "."

// Store keeps opaque records as files under a shared root directory.
// A collection is a relative directory and a key is a file name inside it.
// IO failures are logged and surface as absent records, never as errors.
type Store struct {
	root   string
	logger logging.Logger
}

func New(root string, logger logging.Logger) *Store {
	return &Store{root: root, logger: logging.OrNoop(logger)}
}

func (s *Store) Root() string {
	return s.root
}

// Dir returns the absolute directory of a collection. The empty collection
// is the root itself.
func (s *Store) Dir(collection string) string {
	return filepath.Join(s.root, filepath.FromSlash(collection))
}

// EnsureCollections creates every collection directory.
func (s *Store) EnsureCollections(collections ...string) error {
	for _, c := range collections {
		if err := validCollection(c); err != nil {
			return err
		}
		if err := os.MkdirAll(s.Dir(c), 0o755); err != nil {
			return fmt.Errorf("cannot create collection %q: %w", c, err)
		}
	}
	return nil
}

// Save overwrites the record. The collection must already exist.
func (s *Store) Save(collection, key string, record []byte) {
	path, ok := s.path(collection, key)
	if !ok {
		return
	}
	if err := os.WriteFile(path, record, 0o644); err != nil {
		s.logger.Error("cannot save record", "collection", collection, "key", key, "error", err)
	}
}

// SaveAtomic writes to a hidden temp file and renames it into place so
// readers never observe a partial record.
func (s *Store) SaveAtomic(collection, key string, record []byte) {
	path, ok := s.path(collection, key)
	if !ok {
		return
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPrefix+key+".*")
	if err != nil {
		s.logger.Error("cannot create temp record", "collection", collection, "key", key, "error", err)
		return
	}
	_, werr := tmp.Write(record)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		s.logger.Error("cannot write temp record", "collection", collection, "key", key, "error", err)
		return
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		s.logger.Error("cannot publish record", "collection", collection, "key", key, "error", err)
	}
}

// Load returns the record bytes, or false when it is missing or unreadable.
func (s *Store) Load(collection, key string) ([]byte, bool) {
	path, ok := s.path(collection, key)
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("cannot load record", "collection", collection, "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (s *Store) Delete(collection, key string) {
	path, ok := s.path(collection, key)
	if !ok {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("cannot delete record", "collection", collection, "key", key, "error", err)
	}
}

func (s *Store) Exists(collection, key string) bool {
	path, ok := s.path(collection, key)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Move saves the record in another collection, then deletes it from the
// first. The source is kept when the target could not be written.
func (s *Store) Move(from, to, key string, record []byte) {
	s.Save(to, key, record)
	if !s.Exists(to, key) {
		s.logger.Error("record not moved", "from", from, "to", to, "key", key)
		return
	}
	s.Delete(from, key)
}

// List returns the sorted record keys of a collection. Hidden files and
// sub-directories are skipped.
func (s *Store) List(collection string) []string {
	return s.entries(collection, false)
}

// ListDirs returns the sorted sub-directory names of a collection.
func (s *Store) ListDirs(collection string) []string {
	return s.entries(collection, true)
}

// RemoveCollection deletes a collection directory and everything in it.
func (s *Store) RemoveCollection(collection string) {
	if err := validCollection(collection); err != nil || collection == "" {
		s.logger.Error("refusing to remove collection", "collection", collection)
		return
	}
	if err := os.RemoveAll(s.Dir(collection)); err != nil {
		s.logger.Error("cannot remove collection", "collection", collection, "error", err)
	}
}

func (s *Store) entries(collection string, dirs bool) []string {
	if err := validCollection(collection); err != nil {
		s.logger.Error("invalid collection", "collection", collection, "error", err)
		return nil
	}
	entries, err := os.ReadDir(s.Dir(collection))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("cannot list collection", "collection", collection, "error", err)
		}
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), tempPrefix) || e.IsDir() != dirs {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Store) path(collection, key string) (string, bool) {
	if err := validCollection(collection); err != nil {
		s.logger.Error("invalid collection", "collection", collection, "error", err)
		return "", false
	}
	if err := ValidKey(key); err != nil {
		s.logger.Error("invalid key", "collection", collection, "key", key, "error", err)
		return "", false
	}
	return filepath.Join(s.Dir(collection), key), true
}

// ValidKey rejects keys that would escape their collection.
func ValidKey(key string) error {
	switch {
	case key == "", key == ".", key == "..":
		return fmt.Errorf("key %q not allowed", key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("key %q contains a path separator", key)
	case strings.HasPrefix(key, tempPrefix):
		return fmt.Errorf("key %q is hidden", key)
	}
	return nil
}

func validCollection(collection string) error {
	if collection == "" {
		return nil
	}
	if filepath.IsAbs(collection) {
		return fmt.Errorf("collection %q is absolute", collection)
	}
	for _, part := range strings.Split(filepath.ToSlash(collection), "/") {
		if part == ".." {
			return fmt.Errorf("collection %q escapes the root", collection)
		}
	}
	return nil
}
