package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tLat87/SportJournal/internal/state"
)

const jsonStoreVersion = 1

// document is the on-disk layout of a JSONStore.
type document struct {
	Version   int            `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
	Slices    state.Snapshot `json:"slices"`
}

// JSONStore keeps the whole snapshot in one JSON file.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// re-running init keeps an existing journal, as the SQL stores do
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &document{
		Version: jsonStoreVersion,
		Slices:  state.Snapshot{},
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade sportjournal", doc.Version, jsonStoreVersion)
	}
	if doc.Slices == nil {
		doc.Slices = state.Snapshot{}
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) LoadSnapshot() (state.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, errNotLoaded
	}

	snap := make(state.Snapshot, len(s.doc.Slices))
	for k, v := range s.doc.Slices {
		snap[k] = v
	}
	return snap, nil
}

func (s *JSONStore) SaveSnapshot(snap state.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return errNotLoaded
	}

	for k, v := range snap {
		s.doc.Slices[k] = v
	}
	s.doc.UpdatedAt = time.Now().UTC()
	return s.save()
}

// save writes the document through a temp file so a crash never leaves a
// truncated store behind. Callers hold mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
