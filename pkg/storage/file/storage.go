package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

// CorruptSuffix is appended to a file that could not be parsed when it is
// moved aside.
const CorruptSuffix = ".corrupt"

// Storage implements storage.Store as a single JSON file
type Storage struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*storage.Entry
	log     *logging.Logger
}

// New creates a file store at path, loading any existing entries. A file
// that cannot be parsed is moved to path+CorruptSuffix and the store starts
// empty; only an unreadable file is an error.
func New(path string, logger *logging.Logger) (*Storage, error) {
	s := &Storage{
		path:    path,
		entries: make(map[string]*storage.Entry),
		log:     logger.Or(),
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	return s, nil
}

// Get returns the blob stored under key
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), entry.Value...), nil
}

// Set saves or replaces key and rewrites the file
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &storage.Entry{
		Key:       key,
		Value:     append([]byte(nil), value...),
		UpdatedAt: time.Now(),
	}

	return s.save()
}

// Delete removes key and rewrites the file
func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.save()
}

// Close is a no-op; every Set is already on disk
func (s *Storage) Close() error {
	return nil
}

// Helper functions

func (s *Storage) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.entries = make(map[string]*storage.Entry)
		s.log.Warn("Unparseable snapshot file %s, starting empty: %v", s.path, err)
		if err := os.Rename(s.path, s.path+CorruptSuffix); err != nil {
			s.log.Error("Error moving %s aside: %v", s.path, err)
		}
	}
	return nil
}

func (s *Storage) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	// write then rename so a crash never leaves a half-written file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}
