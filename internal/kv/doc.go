// Package kv provides the key-value persistence primitive underneath the table store.
//
// # Contract
//
// A Store holds whole JSON documents under arbitrary string keys:
//
//   - Get: returns the stored bytes, or ErrNotFound when the key is absent
//   - Set: replaces the value stored under a key
//   - Delete: removes a key (absent keys are not an error)
//   - Keys: lists every key currently stored
//   - Clear: removes every key
//
// Any operation may fail (disk full, closed database, context cancelled). Callers
// decide whether to surface or swallow those failures.
//
// # Backends
//
//   - MemoryStore: process-local map, used by tests and ephemeral sessions
//   - SQLiteStore: single-table SQLite database (modernc.org/sqlite by default,
//     github.com/mattn/go-sqlite3 when the "sqlite3" driver is selected)
//
// Both backends are safe for concurrent use. Read-modify-write sequences spanning
// several calls are not atomic; that is the caller's concern.
package kv
