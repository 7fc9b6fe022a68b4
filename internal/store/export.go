// ABOUTME: Full JSON dump of every table for the settings export action
// ABOUTME: Tables are read concurrently; each is a raw JSON array of records

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// Snapshot is an export of every table.
type Snapshot struct {
	ExportedAt time.Time                    `json:"exported_at"`
	Tables     map[string][]json.RawMessage `json:"tables"`
}

// Export reads every known table. Unreadable tables export as empty arrays,
// matching GetAll; only a cancelled context fails the export.
func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	names := TableNames()
	results := make([][]json.RawMessage, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = GetAll(gctx, s, Table[json.RawMessage]{name: name})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("exporting tables: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("exporting tables: %w", err)
	}

	snap := &Snapshot{
		ExportedAt: s.stamp(),
		Tables:     make(map[string][]json.RawMessage, len(names)),
	}
	for i, name := range names {
		snap.Tables[name] = results[i]
	}
	return snap, nil
}

// WriteExport writes an indented JSON export to w.
func (s *Store) WriteExport(ctx context.Context, w io.Writer) error {
	snap, err := s.Export(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}
