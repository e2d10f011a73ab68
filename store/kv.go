// Package store keeps small keyed blobs, such as the chat history, across
// runs. Adapters are interchangeable behind the KV interface.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"chatterm/config"
)

// ErrNotFound is returned by Get and Delete when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// KV is a keyed byte store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const (
	historyFileName = "history.json"
	sqliteFileName  = "chatterm.db"
)

// Open returns the adapter named by backend, rooted in dir. The returned
// close function releases the adapter's resources.
func Open(ctx context.Context, backend, dir string) (KV, func() error, error) {
	switch backend {
	case config.StorageFile, "":
		return NewFileKV(filepath.Join(dir, historyFileName)), func() error { return nil }, nil
	case config.StorageSQLite:
		kv, err := OpenSQLite(ctx, "file:"+filepath.Join(dir, sqliteFileName)+"?_busy_timeout=5000")
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	}
	return nil, nil, fmt.Errorf("store: unknown backend %q", backend)
}
