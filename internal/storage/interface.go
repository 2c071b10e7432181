package storage

import "github.com/tLat87/SportJournal/internal/state"

// Provider is the Persistence Gateway: it stores the state snapshot under the
// whitelisted slice keys.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// LoadSnapshot returns every persisted slice. An empty snapshot is not an
	// error: it means nothing has been saved yet.
	LoadSnapshot() (state.Snapshot, error)
	// SaveSnapshot replaces the persisted slices present in snap.
	SaveSnapshot(snap state.Snapshot) error

	// Utils
	GetConfigPath() string
}
