// Package store persists mileage records and settings in a key-value store.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNotFound is returned by KV.Get for a key that was never written.
var ErrNotFound = errors.New("record not found")

// KV is the byte-level record store. Each Set replaces one whole record.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Keys() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendDisk   = "disk"
)

// Open opens the named backend rooted at dataDir.
func Open(backend, dataDir string) (KV, error) {
	switch backend {
	case "", BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, "milo.db"))
	case BackendDisk:
		return OpenDisk(filepath.Join(dataDir, "records"))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
