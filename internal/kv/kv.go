// ABOUTME: Key-value Store interface shared by the memory and SQLite backends
// ABOUTME: Values are opaque byte slices holding whole JSON documents

package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("key not found")

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("store closed")

// Store is the asynchronous-style key-value primitive the table store is built on.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error

	// Close releases any resources held by the store
	Close() error
}
