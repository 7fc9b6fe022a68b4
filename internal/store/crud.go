// ABOUTME: Generic CRUD over whole-table JSON arrays
// ABOUTME: Create applies the uniform retention cap; GetAll never fails

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2389/moodspace/internal/kv"
)

// loadTable reads and decodes a table. An absent key is an empty table.
func loadTable[R any](ctx context.Context, s *Store, name string) ([]R, error) {
	raw, err := s.kv.Get(ctx, name)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", name, err)
	}

	var rows []R
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decoding table %s: %w", name, err)
	}
	return rows, nil
}

// saveTable encodes and writes a whole table.
func saveTable[R any](ctx context.Context, s *Store, name string, rows []R) error {
	if rows == nil {
		rows = []R{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding table %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, name, data); err != nil {
		return fmt.Errorf("writing table %s: %w", name, err)
	}
	return nil
}

// GetAll returns every record of t. Unreadable or malformed tables are logged
// and reported as empty.
func GetAll[R any](ctx context.Context, s *Store, t Table[R]) []R {
	rows, err := loadTable[R](ctx, s, t.name)
	if err != nil {
		s.logger.Warn("table unreadable, treating as empty", "table", t.name, "error", err)
		return []R{}
	}
	if rows == nil {
		return []R{}
	}
	return rows
}

// GetByID returns the record of t with the given id.
func GetByID[R any, P record[R]](ctx context.Context, s *Store, t Table[R], id string) (R, bool) {
	for _, r := range GetAll(ctx, s, t) {
		if P(&r).meta().ID == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// Create stores data as a new record of t. A non-empty data ID is kept, otherwise
// a fresh one is generated; timestamps are always stamped by the store. When the
// table grows past the retention cap its oldest record is evicted.
func Create[R any, P record[R]](ctx context.Context, s *Store, t Table[R], data R) (R, error) {
	now := s.stamp()
	m := P(&data).meta()
	if m.ID == "" {
		m.ID = s.newID()
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	rows := GetAll(ctx, s, t)
	rows = append(rows, data)
	if s.maxRows > 0 && len(rows) > s.maxRows {
		s.logger.Debug("retention cap reached, evicting oldest record",
			"table", t.name, "id", P(&rows[0]).meta().ID)
		rows = rows[1:]
	}

	if err := saveTable(ctx, s, t.name, rows); err != nil {
		var zero R
		return zero, err
	}
	return data, nil
}

// Update applies mutate to the record of t with the given id and persists the
// table. The id and created_at fields cannot be changed; updated_at is refreshed.
// A missing id reports false and writes nothing.
func Update[R any, P record[R]](ctx context.Context, s *Store, t Table[R], id string, mutate func(P)) (R, bool, error) {
	var zero R

	rows := GetAll(ctx, s, t)
	for i := range rows {
		m := P(&rows[i]).meta()
		if m.ID != id {
			continue
		}

		prev := *m
		if mutate != nil {
			mutate(&rows[i])
		}
		m.ID = prev.ID
		m.CreatedAt = prev.CreatedAt
		m.UpdatedAt = s.stamp()
		// updated_at must move forward even when the clock has not
		if !m.UpdatedAt.After(prev.UpdatedAt) {
			m.UpdatedAt = prev.UpdatedAt.Add(time.Microsecond)
		}

		if err := saveTable(ctx, s, t.name, rows); err != nil {
			return zero, false, err
		}
		return rows[i], true, nil
	}
	return zero, false, nil
}

// Delete removes the record of t with the given id and reports whether one was removed.
func Delete[R any, P record[R]](ctx context.Context, s *Store, t Table[R], id string) (bool, error) {
	rows := GetAll(ctx, s, t)
	kept := make([]R, 0, len(rows))
	for _, r := range rows {
		if P(&r).meta().ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rows) {
		return false, nil
	}

	if err := saveTable(ctx, s, t.name, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ClearTable overwrites t with an empty array.
func ClearTable[R any](ctx context.Context, s *Store, t Table[R]) error {
	return saveTable[R](ctx, s, t.name, nil)
}

// ClearAll wipes the backend: every table and every scalar value.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	s.logger.Info("all local data cleared")
	return nil
}
