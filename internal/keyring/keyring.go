package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/tLat87/SportJournal/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Store is one secret slot in the OS keyring.
type Store struct {
	Service string
	User    string
}

// Default is the slot holding the PostgreSQL connection string.
func Default() Store {
	return Store{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

// Get returns the stored connection string or ErrNotFound.
func (s Store) Get() (string, error) {
	connStr, err := keyring.Get(s.Service, s.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// Set stores connStr, which must be a PostgreSQL URL or a key=value DSN.
func (s Store) Set(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if !strings.HasPrefix(connStr, "postgres://") &&
		!strings.HasPrefix(connStr, "postgresql://") &&
		!strings.Contains(connStr, "host=") &&
		!strings.Contains(connStr, "dbname=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if err := keyring.Set(s.Service, s.User, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (s Store) Delete() error {
	if err := keyring.Delete(s.Service, s.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available reports whether the OS keyring answers at all. A missing secret
// still counts as available.
func (s Store) Available() bool {
	_, err := keyring.Get(s.Service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
