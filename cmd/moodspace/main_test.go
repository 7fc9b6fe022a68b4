package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2389/moodspace/internal/kv"
	"github.com/2389/moodspace/internal/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	goleak.VerifyTestMain(m)
}

type testApp struct {
	*app
	buf *bytes.Buffer
	now time.Time
}

func newTestApp(t *testing.T, now time.Time) *testApp {
	t.Helper()
	ta := &testApp{buf: &bytes.Buffer{}, now: now}
	s := store.New(kv.NewMemoryStore(), store.Options{
		Language: store.LanguageEnglish,
		Now:      func() time.Time { return ta.now },
	})
	ta.app = newApp(s, ta.buf, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	return ta
}

func (ta *testApp) run(t *testing.T, args ...string) string {
	t.Helper()
	ta.buf.Reset()
	require.NoError(t, ta.dispatch(context.Background(), args[0], args[1:]))
	return ta.buf.String()
}

func (ta *testApp) fail(t *testing.T, args ...string) error {
	t.Helper()
	err := ta.dispatch(context.Background(), args[0], args[1:])
	require.Error(t, err)
	return err
}

var friday = time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC)

func TestMoodSet_CreateThenUpdateSameDay(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	ta.run(t, "mood", "set", "--rating", "6", "--emotion", "calm", "--weather=sunny")
	out := ta.run(t, "mood", "set", "--rating", "8", "--notes", "good run")
	assert.Contains(t, out, "Mood saved for 2024-06-07 (8/10)")

	moods := store.GetAll(ctx, ta.store, store.Moods)
	require.Len(t, moods, 1, "one mood per date")
	assert.Equal(t, 8, moods[0].DirectRating)
	assert.Equal(t, "calm", moods[0].Emotion, "unchanged fields are kept")
	assert.Equal(t, "good run", moods[0].Notes)

	out = ta.run(t, "mood", "show")
	assert.Contains(t, out, "8/10")
	assert.Contains(t, out, "sunny")
}

func TestMoodSet_Validation(t *testing.T) {
	ta := newTestApp(t, friday)

	err := ta.fail(t, "mood", "set", "--rating", "11")
	assert.ErrorIs(t, err, store.ErrInvalidRecord)

	err = ta.fail(t, "mood", "set", "--emotion", "happy")
	assert.ErrorIs(t, err, store.ErrInvalidRecord, "rating is required for a new mood")

	err = ta.fail(t, "mood", "set", "--rating", "5", "--date", "07/06/2024")
	assert.ErrorIs(t, err, store.ErrInvalidRecord)

	assert.Empty(t, store.GetAll(context.Background(), ta.store, store.Moods))
}

func TestMoodSet_RejectsDatesPastRetention(t *testing.T) {
	ta := newTestApp(t, friday)

	err := ta.fail(t, "mood", "set", "--rating", "5", "--date", "2024-05-01")
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
	assert.NotContains(t, ta.buf.String(), "Mood saved")

	ta.run(t, "mood", "set", "--rating", "5", "--date", "2024-06-01")
	assert.Len(t, store.GetAll(context.Background(), ta.store, store.Moods), 1)
}

func TestMoodWeek_UsesSettingsLanguage(t *testing.T) {
	ta := newTestApp(t, friday)

	ta.run(t, "mood", "set", "--rating", "6")
	ta.run(t, "settings", "set", "--language", "fr")

	out := ta.run(t, "mood", "week")
	assert.Contains(t, out, "ven.")
	assert.NotContains(t, out, "Fri")
}

func TestMoodWeekAndHistory(t *testing.T) {
	ta := newTestApp(t, friday)

	ta.run(t, "mood", "set", "--rating", "4", "--date", "2024-06-05")
	ta.run(t, "mood", "set", "--rating", "9")

	out := ta.run(t, "mood", "week")
	assert.Contains(t, out, "Fri")
	assert.Contains(t, out, "█████████ 9")
	assert.Contains(t, out, "Wed")

	out = ta.run(t, "mood", "history")
	assert.Less(t, strings.Index(out, "2024-06-07"), strings.Index(out, "2024-06-05"), "newest first")
}

func TestTasks_AddListDoneRemove(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	ta.run(t, "tasks", "add", "water", "the", "plants")
	ta.run(t, "tasks", "add", "call", "mum")

	tasks := ta.store.TasksByDate(ctx, "2024-06-07")
	require.Len(t, tasks, 2)
	assert.Equal(t, "water the plants", tasks[0].Text)
	assert.Equal(t, 0, tasks[0].Order)
	assert.Equal(t, 1, tasks[1].Order)

	out := ta.run(t, "tasks", "done", tasks[0].ID[:8])
	assert.Contains(t, out, "Completed: water the plants")

	out = ta.run(t, "tasks")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "call mum")

	ta.run(t, "tasks", "rm", tasks[1].ID)
	assert.Len(t, ta.store.TasksByDate(ctx, "2024-06-07"), 1)
}

func TestTasks_ActiveCap(t *testing.T) {
	ta := newTestApp(t, friday)

	for i := 0; i < store.MaxActiveTasksPerDay; i++ {
		ta.run(t, "tasks", "add", "task")
	}
	err := ta.fail(t, "tasks", "add", "one", "too", "many")
	assert.Contains(t, err.Error(), "already 5 active tasks")

	ta.run(t, "tasks", "add", "tomorrow", "--date", "2024-06-08")
}

func TestTasks_UnknownID(t *testing.T) {
	ta := newTestApp(t, friday)
	err := ta.fail(t, "tasks", "done", "nope")
	assert.Contains(t, err.Error(), "no tasks record")
}

func TestPomodoro(t *testing.T) {
	ta := newTestApp(t, friday)

	out := ta.run(t, "pomodoro")
	assert.Contains(t, out, "no sessions today")

	ta.run(t, "pomodoro", "save", "2", "50m")
	ta.run(t, "pomodoro", "save", "3", "75")

	p, ok := ta.store.PomodoroSessionForToday(context.Background())
	require.True(t, ok)
	assert.Equal(t, 3, p.CompletedSessions)
	assert.Equal(t, 75*60, p.TotalFocusTime)
	assert.Len(t, store.GetAll(context.Background(), ta.store, store.PomodoroSessions), 1)

	out = ta.run(t, "pomodoro", "show")
	assert.Contains(t, out, "1h15m0s")

	ta.fail(t, "pomodoro", "save", "-1", "10m")
	ta.fail(t, "pomodoro", "save", "1", "soon")
}

func TestBoard(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	ta.run(t, "board", "add", "https://example.com/sky.jpg", "blue", "sky")
	items := store.GetAll(ctx, ta.store, store.MoodboardItems)
	require.Len(t, items, 1)
	assert.Equal(t, "blue sky", items[0].Caption)

	ta.run(t, "board", "caption", items[0].ID, "evening")
	item, ok := store.GetByID(ctx, ta.store, store.MoodboardItems, items[0].ID)
	require.True(t, ok)
	assert.Equal(t, "evening", item.Caption)

	out := ta.run(t, "board")
	assert.Contains(t, out, "evening")

	ta.run(t, "board", "rm", items[0].ID)
	assert.Empty(t, store.GetAll(ctx, ta.store, store.MoodboardItems))
}

func TestCards_KeepsTwoNewest(t *testing.T) {
	ta := newTestApp(t, friday)

	for _, title := range []string{"one", "two", "three"} {
		ta.run(t, "cards", "add", "--title", title, "--background", "#fff", "--text-color", "#000", "--shape", "round")
		ta.now = ta.now.Add(time.Minute)
	}

	cards := store.GetAll(context.Background(), ta.store, store.AestheticCards)
	require.Len(t, cards, 2)
	assert.Equal(t, "three", cards[0].Title)
	assert.Equal(t, "two", cards[1].Title)

	out := ta.run(t, "cards")
	assert.Contains(t, out, "three")
	assert.NotContains(t, out, "one")

	ta.fail(t, "cards", "add", "--subtitle", "no title")
}

func TestCards_DraftStyleIsReused(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	out := ta.run(t, "cards", "draft")
	assert.Contains(t, out, "no draft yet")

	ta.run(t, "cards", "add", "--title", "first", "--background", "#123", "--text-color", "#fff", "--shape", "pill")
	draft, ok := store.GetValue[store.AestheticCard](ctx, ta.store, store.KeyCardAesthetic)
	require.True(t, ok)
	assert.Equal(t, "#123", draft.BackgroundColor)
	assert.Empty(t, draft.ID)

	ta.now = ta.now.Add(time.Minute)
	ta.run(t, "cards", "add", "--title", "second", "--shape", "square")

	cards := store.GetAll(ctx, ta.store, store.AestheticCards)
	require.Len(t, cards, 2)
	assert.Equal(t, "second", cards[0].Title)
	assert.Equal(t, "#123", cards[0].BackgroundColor)
	assert.Equal(t, "#fff", cards[0].TextColor)
	assert.Equal(t, "square", cards[0].Shape)

	out = ta.run(t, "cards", "draft")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "square")
}

func TestFeedback(t *testing.T) {
	ta := newTestApp(t, friday)

	ta.run(t, "feedback", "--type", "suggestion", "--rating", "5", "more", "themes")
	rows := store.GetAll(context.Background(), ta.store, store.UserFeedback)
	require.Len(t, rows, 1)
	assert.Equal(t, store.FeedbackSuggestion, rows[0].Type)
	assert.Equal(t, "more themes", rows[0].Content)
	assert.Equal(t, 5, rows[0].Rating)

	err := ta.fail(t, "feedback", "--rating", "9", "too", "high")
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
	err = ta.fail(t, "feedback")
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
}

func TestChat_OnlyToday(t *testing.T) {
	ta := newTestApp(t, friday)

	ta.run(t, "chat", "say", "hello")
	ta.run(t, "chat", "say", "--role", "assistant", "hi", "there")
	out := ta.run(t, "chat")
	assert.Contains(t, out, "you: hello")
	assert.Contains(t, out, "assistant: hi there")

	ta.now = ta.now.Add(24 * time.Hour)
	ta.run(t, "chat", "say", "new day")
	out = ta.run(t, "chat", "today")
	assert.NotContains(t, out, "hello")
	assert.Contains(t, out, "new day")

	ta.fail(t, "chat", "say", "--role", "system", "nope")
}

func TestSettings(t *testing.T) {
	ta := newTestApp(t, friday)

	out := ta.run(t, "settings")
	assert.Contains(t, out, "Settings (defaults)")
	assert.Contains(t, out, "bubbles")

	ta.run(t, "settings", "set", "--theme", "dark", "--animations", "off", "--custom-theme", `{"accent":"#f0f"}`)
	s, ok := ta.store.UserSettings(context.Background())
	require.True(t, ok)
	assert.Equal(t, "dark", s.Theme)
	assert.False(t, s.AnimationEnabled)
	assert.JSONEq(t, `{"accent":"#f0f"}`, string(s.CustomTheme))

	ta.run(t, "settings", "set", "--clear-custom-theme")
	s, _ = ta.store.UserSettings(context.Background())
	assert.Empty(t, s.CustomTheme)
	assert.Equal(t, "dark", s.Theme)

	ta.fail(t, "settings", "set")
	ta.fail(t, "settings", "set", "--language", "de")
	ta.fail(t, "settings", "set", "--custom-theme", "{oops")
	ta.fail(t, "settings", "set", "--animations", "maybe")
}

func TestSettings_MirrorsScalarPreferences(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	ta.run(t, "settings", "set", "--language", "fr", "--theme", "dark", "--animation", "waves",
		"--animations", "off", "--custom-theme", `{"accent":"#f0f"}`)

	lang, ok := store.GetValue[string](ctx, ta.store, store.KeyLanguage)
	require.True(t, ok)
	assert.Equal(t, "fr", lang)
	theme, _ := store.GetValue[string](ctx, ta.store, store.KeyTheme)
	assert.Equal(t, "dark", theme)
	anim, _ := store.GetValue[string](ctx, ta.store, store.KeyAnimationType)
	assert.Equal(t, "waves", anim)
	enabled, ok := store.GetValue[bool](ctx, ta.store, store.KeyAnimationEnabled)
	require.True(t, ok)
	assert.False(t, enabled)
	custom, ok := store.GetValue[json.RawMessage](ctx, ta.store, store.KeyCustomTheme)
	require.True(t, ok)
	assert.JSONEq(t, `{"accent":"#f0f"}`, string(custom))

	ta.run(t, "settings", "set", "--clear-custom-theme")
	_, ok = store.GetValue[json.RawMessage](ctx, ta.store, store.KeyCustomTheme)
	assert.False(t, ok)
	theme, _ = store.GetValue[string](ctx, ta.store, store.KeyTheme)
	assert.Equal(t, "dark", theme, "untouched scalars are kept")
}

func TestSettings_ShowPrefersScalars(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	require.NoError(t, ta.store.SetValue(ctx, store.KeyTheme, "forest"))
	out := ta.run(t, "settings")
	assert.Contains(t, out, "Settings\n")
	assert.NotContains(t, out, "(defaults)")
	assert.Contains(t, out, "forest")

	ta.run(t, "settings", "set", "--theme", "dark")
	require.NoError(t, ta.store.SetValue(ctx, store.KeyTheme, "sunset"))
	require.NoError(t, ta.store.SetValue(ctx, store.KeyLanguage, "fr"))
	out = ta.run(t, "settings")
	assert.Contains(t, out, "sunset")
	assert.NotContains(t, out, "dark")
	assert.Equal(t, "fr", ta.language(ctx))
}

func TestExport_ToFile(t *testing.T) {
	ta := newTestApp(t, friday)
	ta.run(t, "mood", "set", "--rating", "7")

	path := filepath.Join(t.TempDir(), "export.json")
	ta.run(t, "export", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap store.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Tables[store.Moods.Name()], 1)
	assert.Contains(t, snap.Tables, store.Conversations.Name())
}

func TestClear(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	ta.run(t, "mood", "set", "--rating", "7")
	ta.run(t, "tasks", "add", "x")

	ta.fail(t, "clear")
	ta.fail(t, "clear", "nope", "--yes")

	ta.run(t, "clear", "moods", "--yes")
	assert.Empty(t, store.GetAll(ctx, ta.store, store.Moods))
	assert.Len(t, store.GetAll(ctx, ta.store, store.Tasks), 1)

	ta.run(t, "clear", "--yes")
	assert.Empty(t, store.GetAll(ctx, ta.store, store.Tasks))
}

func TestCleanup(t *testing.T) {
	ta := newTestApp(t, friday)
	ctx := context.Background()

	_, err := store.Create(ctx, ta.store, store.Moods, store.Mood{Date: "2024-05-01", DirectRating: 3})
	require.NoError(t, err)
	ta.run(t, "chat", "say", "yesterday")
	ta.now = ta.now.Add(24 * time.Hour)

	out := ta.run(t, "cleanup")
	assert.Contains(t, out, "cleaned up")
	assert.Empty(t, store.GetAll(ctx, ta.store, store.Moods))
	assert.Empty(t, store.GetAll(ctx, ta.store, store.Conversations))
}

func TestNudges(t *testing.T) {
	ta := newTestApp(t, friday)

	out := ta.run(t, "nudges")
	assert.Contains(t, out, "Welcome to MoodSpace")
	assert.Contains(t, out, "organise your tasks")

	out = ta.run(t, "nudges")
	assert.Contains(t, out, "nothing right now")

	ta.run(t, "settings", "set", "--language", "fr")
	ta.run(t, "tasks", "add", "x")
	tasks := ta.store.TasksByDate(context.Background(), "2024-06-07")
	ta.run(t, "tasks", "done", tasks[0].ID)

	out = ta.run(t, "nudges")
	assert.Contains(t, out, "1 tâche terminée")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	ta := newTestApp(t, friday)
	err := ta.fail(t, "dance")
	assert.Contains(t, err.Error(), "unknown command")

	err = ta.fail(t, "mood", "dance")
	assert.Contains(t, err.Error(), "unknown mood subcommand")
}

func TestHelp(t *testing.T) {
	ta := newTestApp(t, friday)
	out := ta.run(t, "help")
	assert.Contains(t, out, "Usage: moodspace")
	assert.Contains(t, out, "MOODSPACE_CONFIG")
}
