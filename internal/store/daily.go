// ABOUTME: Day-scoped queries for tasks and pomodoro sessions, plus card history
// ABOUTME: SavePomodoroSessionForToday upserts by today's date

package store

import (
	"context"
	"sort"
)

// DefaultRecentCards is how many aesthetic cards are kept and shown.
const DefaultRecentCards = 2

// TasksByDate returns the tasks of date in ascending order.
func (s *Store) TasksByDate(ctx context.Context, date string) []Task {
	var tasks []Task
	for _, t := range GetAll(ctx, s, Tasks) {
		if t.Date == date {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
	return tasks
}

// newestCards returns every card sorted by creation time, newest first.
func newestCards(cards []AestheticCard) []AestheticCard {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].CreatedAt.After(cards[j].CreatedAt)
	})
	return cards
}

// RecentAestheticCards returns up to limit cards, newest first. A limit that is
// not positive means DefaultRecentCards.
func (s *Store) RecentAestheticCards(ctx context.Context, limit int) []AestheticCard {
	if limit <= 0 {
		limit = DefaultRecentCards
	}
	cards := newestCards(GetAll(ctx, s, AestheticCards))
	if len(cards) > limit {
		cards = cards[:limit]
	}
	return cards
}

// CleanupOldAestheticCards keeps only the most recently created cards.
func (s *Store) CleanupOldAestheticCards(ctx context.Context) error {
	cards := newestCards(GetAll(ctx, s, AestheticCards))
	if len(cards) > DefaultRecentCards {
		cards = cards[:DefaultRecentCards]
	}
	return saveTable(ctx, s, AestheticCards.name, cards)
}

// PomodoroSessionForToday returns today's pomodoro session.
func (s *Store) PomodoroSessionForToday(ctx context.Context) (PomodoroSession, bool) {
	today := s.Today()
	for _, p := range GetAll(ctx, s, PomodoroSessions) {
		if p.Date == today {
			return p, true
		}
	}
	return PomodoroSession{}, false
}

// SavePomodoroSessionForToday records today's totals, updating today's session
// when one exists and creating it otherwise. New sessions use today's date as id.
func (s *Store) SavePomodoroSessionForToday(ctx context.Context, completed, focusSeconds int) (PomodoroSession, error) {
	if existing, ok := s.PomodoroSessionForToday(ctx); ok {
		updated, found, err := Update(ctx, s, PomodoroSessions, existing.ID, func(p *PomodoroSession) {
			p.CompletedSessions = completed
			p.TotalFocusTime = focusSeconds
		})
		if err != nil || found {
			return updated, err
		}
	}

	today := s.Today()
	return Create(ctx, s, PomodoroSessions, PomodoroSession{
		Meta:              Meta{ID: today},
		Date:              today,
		CompletedSessions: completed,
		TotalFocusTime:    focusSeconds,
	})
}
