// Package store provides durable string-keyed storage for values that must survive restarts.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Store is a durable key-value store holding one opaque value per key.
// Writes replace the whole value for a key.
type Store interface {
	// Get returns the value stored for key. The boolean result is false when no value exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// Backend identifies a Store implementation.
type Backend string

const (
	// BackendFile stores one file per key in a directory.
	BackendFile Backend = "file"

	// BackendSQLite stores keys in a SQLite database.
	BackendSQLite Backend = "sqlite"

	// BackendMemory keeps values in process memory only.
	BackendMemory Backend = "memory"
)

// ErrInvalidKey is returned when a key cannot be used as a storage slot name.
var ErrInvalidKey = errors.New("invalid store key")

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Backends returns the supported backends.
func Backends() []Backend {
	return []Backend{BackendFile, BackendSQLite, BackendMemory}
}

// ParseBackend converts a configured backend name into a Backend.
// An empty value selects BackendFile.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendFile, nil
	case BackendFile, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unsupported store backend '%s'", s)
	}
}

// Open creates the Store for the given backend.
// For BackendFile path is a directory, for BackendSQLite it is a database file (or ":memory:").
// BackendMemory ignores path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend '%s'", backend)
	}
}

func validateKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: '%s'", ErrInvalidKey, key)
	}
	return nil
}
