package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalStore is the demo-mode backend: every collection is one JSON file
// under the data directory, named demo_<collection>.json. Writes replace the
// whole collection snapshot, so readers in the same process never observe a
// partial write.
type LocalStore struct {
	dir   string
	mu    sync.RWMutex
	seeds map[string][]Record
}

// NewLocalStore creates the data directory if needed and returns the store.
// Seed content is computed once here, so repeated loads of an unsaved
// collection return identical records.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create demo data dir %s: %w", dir, err)
	}
	seeds := make(map[string][]Record, len(SeededCollections))
	for _, collection := range SeededCollections {
		seeds[collection] = SeedFor(collection)
	}
	return &LocalStore{dir: dir, seeds: seeds}, nil
}

// seedFor returns a fresh copy of this store's pinned seed content. Unknown
// collections seed empty.
func (s *LocalStore) seedFor(collection string) []Record {
	return CloneRecords(s.seeds[collection])
}

func (s *LocalStore) path(collection string) string {
	return filepath.Join(s.dir, "demo_"+collection+".json")
}

// Load returns the stored sequence for a collection, or its seed content on
// first run. Absence of data is not an error.
func (s *LocalStore) Load(collection string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadLocked(collection)
}

func (s *LocalStore) loadLocked(collection string) []Record {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		return s.seedFor(collection)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return s.seedFor(collection)
	}
	if records == nil {
		records = []Record{}
	}
	return records
}

// Save overwrites the entire stored sequence for a collection. Last writer
// wins; there are no merge semantics.
func (s *LocalStore) Save(collection string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(collection, records)
}

func (s *LocalStore) saveLocked(collection string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}
	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		return fmt.Errorf("failed to persist collection %s: %w", collection, err)
	}
	return nil
}

// Reset restores every known collection to its seed content and discards any
// other demo collection files. Irreversible; the UI confirms intent before
// calling it.
func (s *LocalStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read demo data dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "demo_") && strings.HasSuffix(name, ".json") {
			if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
				return fmt.Errorf("failed to remove %s: %w", name, err)
			}
		}
	}
	for _, collection := range SeededCollections {
		if err := s.saveLocked(collection, s.seedFor(collection)); err != nil {
			return err
		}
	}
	return nil
}

// Select filters then orders; a nil order keeps insertion order.
func (s *LocalStore) Select(_ context.Context, collection string, filter Filter, order *Order) ([]Record, error) {
	s.mu.RLock()
	records := s.loadLocked(collection)
	s.mu.RUnlock()

	result := make([]Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, filter) {
			result = append(result, rec)
		}
	}
	SortRecords(result, order)
	return CloneRecords(result), nil
}

// Insert assigns a fresh id and timestamps; caller-supplied values for these
// fields are overwritten.
func (s *LocalStore) Insert(_ context.Context, collection string, fields Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Format(time.RFC3339)
	rec := CloneRecord(fields)
	rec["id"] = uuid.New().String()
	rec["created_at"] = now
	rec["updated_at"] = now

	records := s.loadLocked(collection)
	records = append(records, rec)
	if err := s.saveLocked(collection, records); err != nil {
		return nil, err
	}
	return CloneRecord(rec), nil
}

// Update patches the first matching record and refreshes updated_at.
func (s *LocalStore) Update(_ context.Context, collection string, matchField string, matchValue any, patch Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.loadLocked(collection)
	for i, rec := range records {
		if !ValuesEqual(rec[matchField], matchValue) {
			continue
		}
		updated := CloneRecord(rec)
		for k, v := range patch {
			if k == "id" || k == "created_at" {
				continue
			}
			updated[k] = v
		}
		updated["updated_at"] = time.Now().Format(time.RFC3339)
		records[i] = updated
		if err := s.saveLocked(collection, records); err != nil {
			return nil, err
		}
		return CloneRecord(updated), nil
	}
	return nil, fmt.Errorf("update %s where %s=%v: %w", collection, matchField, matchValue, ErrNotFound)
}

// Remove deletes all matches; removing nothing succeeds.
func (s *LocalStore) Remove(_ context.Context, collection string, matchField string, matchValue any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.loadLocked(collection)
	kept := records[:0]
	removed := false
	for _, rec := range records {
		if ValuesEqual(rec[matchField], matchValue) {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return nil
	}
	return s.saveLocked(collection, kept)
}
