package storage

import (
	"errors"
	"strings"

	"github.com/tLat87/SportJournal/internal/logger"
)

var (
	errNotInitialized = errors.New("storage not initialized, run 'sportjournal init' first")
	errNotLoaded      = errors.New("storage not loaded")
)

// IsPostgresURL reports whether target is a postgres:// or postgresql:// URL.
func IsPostgresURL(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// IsPostgres reports whether target is a PostgreSQL URL or a key=value DSN
// naming a host or database.
func IsPostgres(target string) bool {
	if IsPostgresURL(target) {
		return true
	}
	for _, pair := range strings.Fields(target) {
		key, _, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "host", "dbname":
			return true
		}
	}
	return false
}

// Open picks a backend for target: PostgreSQL URLs and DSNs, *.json files, and SQLite
// for everything else. Postgres targets must parse; rejecting embedded
// passwords is left to the caller, which knows where the target came from.
func Open(target string) (Provider, error) {
	switch {
	case IsPostgres(target):
		if err := checkFormat(target); err != nil {
			return nil, err
		}
		logger.Debug("Using PostgreSQL store")
		return NewPostgresStore(target), nil
	case strings.HasSuffix(strings.ToLower(target), ".json"):
		logger.Debug("Using JSON store", "path", target)
		return NewJSONStore(target), nil
	default:
		logger.Debug("Using SQLite store", "path", target)
		return NewSQLiteStore(target), nil
	}
}
