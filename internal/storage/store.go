// Package storage provides the persistent key-value capability the SDK
// reads and writes through: credentials, the cached open identifier, and the
// persistent cache tier all live behind the Store interface.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/freightflow/waybill-client/internal/constants"
)

// Store is a synchronous string key-value store. Get returns ok=false for an
// absent key; Keys returns every stored key in unspecified order.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Keys() []string
}

// MemStore is an in-memory Store. It backs tests and acts as the fallback
// when no file path is configured.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get implements Store.Get.
func (s *MemStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]

	return value, ok
}

// Set implements Store.Set.
func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

// Remove implements Store.Remove.
func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}

// Keys implements Store.Keys.
func (s *MemStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// FileStore persists all keys to a single YAML file so cached payloads and
// credentials survive process restarts. Writes rewrite the whole file; the
// store is meant for a modest number of small values.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewFileStore opens (or creates) the store file at path.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	err := store.load()
	if err != nil {
		return nil, err
	}

	return store, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("reading store file: %w", err)
	}

	err = yaml.Unmarshal(data, &s.values)
	if err != nil {
		return fmt.Errorf("parsing store file: %w", err)
	}

	if s.values == nil {
		s.values = make(map[string]string)
	}

	return nil
}

// flush writes the current values; callers must hold the write lock.
func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding store file: %w", err)
	}

	dir := filepath.Dir(s.path)

	err = os.MkdirAll(dir, constants.StoreDirPerm)
	if err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	err = os.WriteFile(s.path, data, constants.StoreFilePerm)
	if err != nil {
		return fmt.Errorf("writing store file: %w", err)
	}

	return nil
}

// Get implements Store.Get.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]

	return value, ok
}

// Set implements Store.Set.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return s.flush()
}

// Remove implements Store.Remove.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}

	delete(s.values, key)

	return s.flush()
}

// Keys implements Store.Keys.
func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
