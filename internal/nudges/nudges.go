// ABOUTME: Smart notification decisions: welcome, productivity reminders, task encouragement
// ABOUTME: State lives in scalar values of the table store; writes are best effort

package nudges

import (
	"context"
	"log/slog"

	"github.com/2389/moodspace/internal/store"
)

// Scalar keys holding nudge state.
const (
	KeyVisited            = "moodspace-visited"
	KeyLastReminder       = "last-productivity-reminder"
	KeyLastEncouragement  = "last-encouragement"
	KeyLastCompletedCount = "last-completed-count"
)

// Reminder identifies a productivity reminder.
type Reminder string

const (
	ReminderNone      Reminder = ""
	ReminderPlanTasks Reminder = "plan_tasks" // morning, 09:00-11:59
	ReminderMoodboard Reminder = "moodboard"  // afternoon, 14:00-16:59
)

// Service decides which nudges to show. It keeps no state of its own.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a Service backed by s.
func New(s *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		logger: logger.With("component", "nudges"),
	}
}

// Welcome reports whether this is the first visit on this device, and marks the
// device as visited.
func (n *Service) Welcome(ctx context.Context) bool {
	if visited, ok := store.GetValue[bool](ctx, n.store, KeyVisited); ok && visited {
		return false
	}
	_ = n.store.SetValue(ctx, KeyVisited, true)
	return true
}

// ProductivityReminder returns the reminder due at the current hour, at most
// once per calendar day.
func (n *Service) ProductivityReminder(ctx context.Context) (Reminder, bool) {
	today := n.store.Today()
	if last, ok := store.GetValue[string](ctx, n.store, KeyLastReminder); ok && last == today {
		return ReminderNone, false
	}

	var r Reminder
	switch hour := n.store.Now().Hour(); {
	case hour >= 9 && hour <= 11:
		r = ReminderPlanTasks
	case hour >= 14 && hour <= 16:
		r = ReminderMoodboard
	default:
		return ReminderNone, false
	}

	_ = n.store.SetValue(ctx, KeyLastReminder, today)
	n.logger.Debug("productivity reminder due", "reminder", r)
	return r, true
}

// TaskEncouragement returns today's completed task count when it has grown past
// the count last encouraged and no encouragement was given today.
func (n *Service) TaskEncouragement(ctx context.Context) (int, bool) {
	today := n.store.Today()

	completed := 0
	for _, t := range n.store.TasksByDate(ctx, today) {
		if t.Completed {
			completed++
		}
	}

	lastDay, _ := store.GetValue[string](ctx, n.store, KeyLastEncouragement)
	lastCount, _ := store.GetValue[int](ctx, n.store, KeyLastCompletedCount)
	if completed == 0 || completed <= lastCount || lastDay == today {
		return 0, false
	}

	_ = n.store.SetValue(ctx, KeyLastEncouragement, today)
	_ = n.store.SetValue(ctx, KeyLastCompletedCount, completed)
	return completed, true
}
