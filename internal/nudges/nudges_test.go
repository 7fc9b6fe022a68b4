package nudges

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/moodspace/internal/kv"
	"github.com/2389/moodspace/internal/store"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T, now time.Time) (*Service, *store.Store, *clock) {
	t.Helper()
	c := &clock{now: now}
	s := store.New(kv.NewMemoryStore(), store.Options{Now: c.Now})
	return New(s, nil), s, c
}

func TestWelcome_OnlyOnce(t *testing.T) {
	n, _, _ := newTestService(t, time.Date(2024, 6, 7, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	assert.True(t, n.Welcome(ctx))
	assert.False(t, n.Welcome(ctx))
}

func TestProductivityReminder_Windows(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want Reminder
		ok   bool
	}{
		{"early", 7, ReminderNone, false},
		{"morning", 9, ReminderPlanTasks, true},
		{"late morning", 11, ReminderPlanTasks, true},
		{"lunch", 12, ReminderNone, false},
		{"afternoon", 14, ReminderMoodboard, true},
		{"late afternoon", 16, ReminderMoodboard, true},
		{"evening", 19, ReminderNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _, _ := newTestService(t, time.Date(2024, 6, 7, tt.hour, 30, 0, 0, time.UTC))

			got, ok := n.ProductivityReminder(context.Background())
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductivityReminder_OncePerDay(t *testing.T) {
	n, _, c := newTestService(t, time.Date(2024, 6, 7, 9, 15, 0, 0, time.UTC))
	ctx := context.Background()

	_, ok := n.ProductivityReminder(ctx)
	require.True(t, ok)

	c.now = c.now.Add(5 * time.Hour) // 14:15, afternoon window
	_, ok = n.ProductivityReminder(ctx)
	assert.False(t, ok)

	c.now = c.now.Add(24 * time.Hour)
	r, ok := n.ProductivityReminder(ctx)
	assert.True(t, ok)
	assert.Equal(t, ReminderMoodboard, r)
}

func TestTaskEncouragement(t *testing.T) {
	n, s, c := newTestService(t, time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, ok := n.TaskEncouragement(ctx)
	assert.False(t, ok, "nothing completed yet")

	task, err := store.Create(ctx, s, store.Tasks, store.Task{Date: "2024-06-07", Text: "run"})
	require.NoError(t, err)
	_, _, err = store.Update(ctx, s, store.Tasks, task.ID, func(t *store.Task) { t.Completed = true })
	require.NoError(t, err)

	count, ok := n.TaskEncouragement(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, count)

	_, ok = n.TaskEncouragement(ctx)
	assert.False(t, ok, "already encouraged today")

	c.now = c.now.Add(24 * time.Hour)
	for i := 0; i < 2; i++ {
		_, err := store.Create(ctx, s, store.Tasks, store.Task{Date: "2024-06-08", Text: "x", Completed: true, Order: i})
		require.NoError(t, err)
	}
	count, ok = n.TaskEncouragement(ctx)
	require.True(t, ok)
	assert.Equal(t, 2, count)
}

func TestMessages(t *testing.T) {
	assert.Contains(t, WelcomeMessage("en"), "Welcome")
	assert.Contains(t, WelcomeMessage("fr-FR"), "Bienvenue")
	assert.Contains(t, ReminderMessage("en", ReminderPlanTasks), "tasks")
	assert.Empty(t, ReminderMessage("en", ReminderNone))
	assert.Contains(t, EncouragementMessage("en", 1), "1 task done")
	assert.Contains(t, EncouragementMessage("fr", 3), "3 tâches terminées")
}
