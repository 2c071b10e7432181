package storage

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/tLat87/SportJournal/internal/migration"
	"github.com/tLat87/SportJournal/internal/state"
)

// sqlSnapshots stores one row per slice key in state_slices. It is shared by
// the SQLite and PostgreSQL stores.
type sqlSnapshots struct {
	db      *sql.DB
	dialect migration.Dialect
}

func (s sqlSnapshots) load() (state.Snapshot, error) {
	if s.db == nil {
		return nil, errNotLoaded
	}

	rows, err := s.db.Query("SELECT key, value FROM state_slices")
	if err != nil {
		return nil, fmt.Errorf("failed to query state slices: %w", err)
	}
	defer rows.Close()

	snap := state.Snapshot{}
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan state slice: %w", err)
		}
		snap[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read state slices: %w", err)
	}
	return snap, nil
}

// save upserts every key of snap in a single transaction.
func (s sqlSnapshots) save(snap state.Snapshot) error {
	if s.db == nil {
		return errNotLoaded
	}

	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(s.dialect.Rebind(`
		INSERT INTO state_slices (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for _, k := range keys {
		if _, err := stmt.Exec(k, string(snap[k]), now); err != nil {
			return fmt.Errorf("failed to save %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// setMeta records a key in app_meta, e.g. the release that initialized the store.
func (s sqlSnapshots) setMeta(key, value string) error {
	_, err := s.db.Exec(s.dialect.Rebind(`
		INSERT INTO app_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`), key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s sqlSnapshots) meta(key string) (string, error) {
	var value string
	err := s.db.QueryRow(s.dialect.Rebind("SELECT value FROM app_meta WHERE key = ?"), key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}
