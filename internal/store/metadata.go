// ABOUTME: App metadata singleton tracking visits
// ABOUTME: RecordVisit creates the record on first use and bumps it afterwards

package store

import "context"

// RecordVisit bumps the visit counter and last visit time, creating the
// metadata record on first use.
func (s *Store) RecordVisit(ctx context.Context) (AppMetadata, error) {
	now := s.stamp()

	if rows := GetAll(ctx, s, Metadata); len(rows) > 0 {
		updated, found, err := Update(ctx, s, Metadata, rows[0].ID, func(m *AppMetadata) {
			m.VisitCount++
			m.LastVisit = now
		})
		if err != nil || found {
			return updated, err
		}
	}

	return Create(ctx, s, Metadata, AppMetadata{
		LastVisit:  now,
		VisitCount: 1,
	})
}
