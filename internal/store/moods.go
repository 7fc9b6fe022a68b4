// ABOUTME: Mood journal queries: lookup by date, recent history, weekly chart data
// ABOUTME: CleanupOldMoods applies age-based retention to the moods table

package store

import (
	"context"
	"sort"
	"time"
)

// MoodRetentionDays is how many calendar days CleanupOldMoods keeps.
const MoodRetentionDays = 7

// DefaultHistoryDays is used by RecentMoodHistory when days is not positive.
const DefaultHistoryDays = 7

// DayMood is one point of the weekly mood chart.
type DayMood struct {
	Day  string `json:"day"`
	Mood int    `json:"mood"`
}

// MoodByDate returns the first mood recorded for date.
func (s *Store) MoodByDate(ctx context.Context, date string) (Mood, bool) {
	for _, m := range GetAll(ctx, s, Moods) {
		if m.Date == date {
			return m, true
		}
	}
	return Mood{}, false
}

// RecentMoodHistory returns moods dated within the last days days, newest first.
func (s *Store) RecentMoodHistory(ctx context.Context, days int) []Mood {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	cutoff := s.now().Add(-time.Duration(days) * 24 * time.Hour)

	type dated struct {
		mood Mood
		at   time.Time
	}
	var recent []dated
	for _, m := range GetAll(ctx, s, Moods) {
		at, ok := s.parseDate(m.Date)
		if !ok || at.Before(cutoff) {
			continue
		}
		recent = append(recent, dated{mood: m, at: at})
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].at.After(recent[j].at)
	})

	out := make([]Mood, len(recent))
	for i, d := range recent {
		out[i] = d.mood
	}
	return out
}

// MoodDataForLast7Days returns the rating of each of the last seven calendar
// days, oldest first and ending today. Days without a mood report 0. When
// several moods share a date the last one in the table wins.
func (s *Store) MoodDataForLast7Days(ctx context.Context) []DayMood {
	return s.MoodDataForLast7DaysIn(ctx, s.language)
}

// MoodDataForLast7DaysIn is MoodDataForLast7Days with weekday labels in lang.
func (s *Store) MoodDataForLast7DaysIn(ctx context.Context, lang string) []DayMood {
	ratings := make(map[string]int)
	for _, m := range GetAll(ctx, s, Moods) {
		ratings[m.Date] = m.DirectRating
	}

	today := s.now().In(s.loc)
	out := make([]DayMood, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		out = append(out, DayMood{
			Day:  WeekdayLabel(lang, d.Weekday()),
			Mood: ratings[d.Format(DateLayout)],
		})
	}
	return out
}

// MoodRetained reports whether a mood dated date survives CleanupOldMoods.
func (s *Store) MoodRetained(date string) bool {
	at, ok := s.parseDate(date)
	if !ok {
		return false
	}
	cutoff := s.now().In(s.loc).AddDate(0, 0, -MoodRetentionDays)
	return !at.Before(cutoff)
}

// CleanupOldMoods drops moods dated more than seven days ago. Moods whose date
// cannot be parsed are dropped too.
func (s *Store) CleanupOldMoods(ctx context.Context) error {
	moods := GetAll(ctx, s, Moods)
	kept := make([]Mood, 0, len(moods))
	for _, m := range moods {
		if s.MoodRetained(m.Date) {
			kept = append(kept, m)
		}
	}

	if err := saveTable(ctx, s, Moods.name, kept); err != nil {
		return err
	}
	if dropped := len(moods) - len(kept); dropped > 0 {
		s.logger.Debug("cleaned up old moods", "dropped", dropped)
	}
	return nil
}
