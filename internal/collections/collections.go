// Package collections is a small per-name JSON-backed record store.
//
// A collection is a flat string-to-string record set persisted as one
// <name>.json file inside the store directory. Writes are atomic and the
// marshaled form is deterministic (keys sorted), so repeated saves of the
// same records are byte-stable.
package collections

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	fileSuffix = ".json"
	dirPerms   = 0o755
)

var (
	// ErrInvalidName reports an empty or unsafe collection name.
	ErrInvalidName = errors.New("invalid collection name")

	// ErrExists reports a create against an existing collection.
	ErrExists = errors.New("collection already exists")

	// ErrNotFound reports an operation against a missing collection.
	ErrNotFound = errors.New("collection not found")
)

// Store manages the collections inside one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether a collection with name exists.
func (s *Store) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}

	_, statErr := os.Stat(path)

	return statErr == nil
}

// Create persists a new collection. Creating an existing name fails with
// ErrExists. A nil record set creates an empty collection.
func (s *Store) Create(name string, records map[string]string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}

	if mkErr := os.MkdirAll(s.dir, dirPerms); mkErr != nil {
		return fmt.Errorf("create store dir: %w", mkErr)
	}

	return write(path, records)
}

// Read returns the records of a collection.
func (s *Store) Read(name string) (map[string]string, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return nil, fmt.Errorf("read collection %s: %w", name, readErr)
	}

	var records map[string]string
	if unmarshalErr := json.Unmarshal(data, &records); unmarshalErr != nil {
		return nil, fmt.Errorf("decode collection %s: %w", name, unmarshalErr)
	}

	if records == nil {
		records = map[string]string{}
	}

	return records, nil
}

// Update replaces the records of an existing collection.
func (s *Store) Update(name string, records map[string]string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if !s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return write(path, records)
}

// Delete removes a collection and all its records.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	removeErr := os.Remove(path)
	if removeErr != nil {
		if os.IsNotExist(removeErr) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return fmt.Errorf("delete collection %s: %w", name, removeErr)
	}

	return nil
}

// List returns the collection names in sorted order. A missing store
// directory lists as empty.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("list collections: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}

		names = append(names, strings.TrimSuffix(entry.Name(), fileSuffix))
	}

	slices.Sort(names)

	return names, nil
}

// path validates name and returns its on-disk path.
func (s *Store) path(name string) (string, error) {
	name = strings.TrimSuffix(name, fileSuffix)
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return filepath.Join(s.dir, name+fileSuffix), nil
}

// write marshals records deterministically and writes them atomically.
func write(path string, records map[string]string) error {
	if records == nil {
		records = map[string]string{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	data = append(data, '\n')

	if writeErr := atomic.WriteFile(path, strings.NewReader(string(data))); writeErr != nil {
		return fmt.Errorf("write collection: %w", writeErr)
	}

	return nil
}
