// Package store persists game-data collections as JSON files, one file
// per collection kind, with an in-process cache in front.
//
// The cache for a kind is populated lazily on first read and is the
// single source of truth for subsequent reads and writes within the
// process lifetime. Every successful write re-serializes the whole
// collection to its backing file and refreshes the cache atomically with
// the persist. Mutations on one kind are serialized by a per-kind mutex;
// a write's effects are visible to every read issued after it completes.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/mizuiro-games/gamedata/pkg/errors"
	"github.com/mizuiro-games/gamedata/pkg/schema"
)

// Store owns the backing files and per-kind caches for all collections.
type Store struct {
	dir  string
	cols map[schema.Kind]*collection
}

// collection guards one kind's cache. The mutex also serializes the
// read-modify-write cycle performed by Mutate.
type collection struct {
	mu      sync.Mutex
	loaded  bool
	records []schema.Record
}

// New creates a store rooted at dir. The directory is created if it does
// not exist; collection files are created on first write.
func New(dir string) (*Store, error) {
	if err := errors.ValidateDataDir(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create data directory %s", dir)
	}

	cols := make(map[schema.Kind]*collection, len(schema.Kinds()))
	for _, kind := range schema.Kinds() {
		cols[kind] = &collection{}
	}
	return &Store{dir: dir, cols: cols}, nil
}

// Dir returns the data directory the store is rooted at.
func (s *Store) Dir() string { return s.dir }

// GetAll returns the current records for the kind, loading the backing
// file on first access. A missing file is an empty collection, not an
// error. The returned slice is a snapshot; callers must not mutate the
// records it holds.
func (s *Store) GetAll(kind schema.Kind) ([]schema.Record, error) {
	col, ok := s.cols[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidCollection, "unknown collection type: %s", kind)
	}

	col.mu.Lock()
	defer col.mu.Unlock()

	if err := s.ensureLoaded(kind, col); err != nil {
		return nil, err
	}
	return snapshot(col.records), nil
}

// Mutate applies fn to the kind's current records under the kind's
// exclusive critical section. fn receives a snapshot it may modify and
// returns the full replacement sequence. On success the replacement is
// persisted and becomes the new cache; if fn or the persist fails,
// neither the cache nor the backing file changes.
func (s *Store) Mutate(kind schema.Kind, fn func(records []schema.Record) ([]schema.Record, error)) ([]schema.Record, error) {
	col, ok := s.cols[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidCollection, "unknown collection type: %s", kind)
	}

	col.mu.Lock()
	defer col.mu.Unlock()

	if err := s.ensureLoaded(kind, col); err != nil {
		return nil, err
	}

	next, err := fn(snapshot(col.records))
	if err != nil {
		return nil, err
	}
	if next == nil {
		next = []schema.Record{}
	}

	if err := s.persist(kind, next); err != nil {
		return nil, err
	}
	col.records = next
	return snapshot(next), nil
}

// ensureLoaded populates the cache from disk on first access.
// The caller must hold col.mu.
func (s *Store) ensureLoaded(kind schema.Kind, col *collection) error {
	if col.loaded {
		return nil
	}
	records, err := s.load(kind)
	if err != nil {
		return err
	}
	col.records = records
	col.loaded = true
	return nil
}

// load reads the backing file for the kind. A missing file yields an
// empty collection.
func (s *Store) load(kind schema.Kind) ([]schema.Record, error) {
	path, err := s.path(kind)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []schema.Record{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}

	var records []schema.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode %s", path)
	}
	if records == nil {
		records = []schema.Record{}
	}
	return records, nil
}

// persist writes the full collection back to its file: pretty-printed
// UTF-8 JSON with non-ASCII text preserved as-is.
func (s *Store) persist(kind schema.Kind, records []schema.Record) error {
	path, err := s.path(kind)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "encode %s collection", kind)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}

func (s *Store) path(kind schema.Kind) (string, error) {
	name, err := schema.FileName(kind)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// snapshot copies the slice header so later cache swaps never alias a
// sequence already handed to a caller. Records themselves are shared and
// treated as immutable after validation.
func snapshot(records []schema.Record) []schema.Record {
	out := make([]schema.Record, len(records))
	copy(out, records)
	return out
}
