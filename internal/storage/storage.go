// Package storage persists the game save as key/value blobs, the way a
// browser keeps it in local storage.
package storage

import (
	"context"
	"fmt"
)

// Keys for the two persisted blobs.
const (
	StateKey = "wonderpets_state"
	MusicKey = "wonderpets_music"
)

// Backend stores opaque blobs by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open creates the backend named kind ("file", "sqlite", or "memory").
func Open(kind, path string) (Backend, error) {
	switch kind {
	case "", "file":
		if path == "" {
			path = "data"
		}
		return NewFileBackend(path)
	case "sqlite":
		return NewSQLiteBackend(path)
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
