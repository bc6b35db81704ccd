package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// DiskKV keeps one file per record under a base directory.
type DiskKV struct {
	d *diskv.Diskv
}

// OpenDisk creates the base directory and returns a file-per-key store.
// Writes go through a temp dir so a record is replaced atomically.
func OpenDisk(basePath string) (*DiskKV, error) {
	tmp := basePath + "-tmp"
	if err := os.MkdirAll(tmp, 0o750); err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return &DiskKV{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      tmp,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0o600,
		PathPerm:     0o750,
	})}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (k *DiskKV) Get(key string) ([]byte, error) {
	val, err := k.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return val, nil
}

// Set replaces the value stored under key.
func (k *DiskKV) Set(key string, value []byte) error {
	if err := k.d.Write(key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Keys returns every stored key in lexical order.
func (k *DiskKV) Keys() ([]string, error) {
	done := make(chan struct{})
	defer close(done)

	var keys []string
	for key := range k.d.Keys(done) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; diskv holds no open handles between calls.
func (k *DiskKV) Close() error {
	return nil
}
