// Package prefs persists small key/value preferences across restarts.
package prefs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Mavwarf/mailshell/internal/paths"
)

// Keys used by mailshell.
const (
	KeyBetaEnabled = "beta.enabled"
	KeyWindowState = "window.state"
)

// Store abstracts preference storage. SQLiteStore is the default; FileStore
// keeps a single JSON object; MemStore never touches disk.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set creates or replaces the value for key.
	Set(key, value string) error
	// Path returns where values are persisted ("" for MemStore).
	Path() string
	Close() error
}

// Bool reports whether key holds exactly "true". Absent keys and read
// errors are false.
func Bool(s Store, key string) bool {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return false
	}
	return v == "true"
}

// ErrNoKeys is returned by Keys for a store that cannot list its keys.
var ErrNoKeys = errors.New("prefs: store cannot list keys")

// Keys returns every stored key in lexical order.
func Keys(s Store) ([]string, error) {
	lister, ok := s.(interface{ Keys() ([]string, error) })
	if !ok {
		return nil, ErrNoKeys
	}
	keys, err := lister.Keys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// SetBool stores b as "true" or "false".
func SetBool(s Store, key string, b bool) error {
	v := "false"
	if b {
		v = "true"
	}
	return s.Set(key, v)
}

// Open returns the store for the given backend name, rooted at dir (the
// data directory when dir is empty).
func Open(storage, dir string) (Store, error) {
	if dir == "" {
		dir = paths.DataDir()
	}
	switch storage {
	case "", "sqlite":
		return NewSQLiteStore(filepath.Join(dir, paths.PrefsDBName))
	case "file":
		return NewFileStore(filepath.Join(dir, paths.PrefsFileName)), nil
	case "memory":
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("prefs: unknown storage %q", storage)
	}
}
