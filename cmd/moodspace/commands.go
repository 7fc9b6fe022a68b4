// ABOUTME: User commands of the moodspace CLI
// ABOUTME: Each command maps to table store operations and prints a short report

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/2389/moodspace/internal/nudges"
	"github.com/2389/moodspace/internal/store"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	gray   = color.New(color.FgHiBlack)
)

func (a *app) header(title string) {
	fmt.Fprintln(a.out)
	cyan.Fprintf(a.out, "  %s\n", title)
	cyan.Fprintf(a.out, "  %s\n", strings.Repeat("-", len([]rune(title))))
}

func (a *app) ok(format string, args ...any) {
	green.Fprint(a.out, "✓ ")
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *app) empty(what string) {
	gray.Fprintf(a.out, "  (%s)\n", what)
	fmt.Fprintln(a.out)
}

// language returns the chosen language: the scalar preference first, then user
// settings, then the configured store language.
func (a *app) language(ctx context.Context) string {
	if lang, ok := store.GetValue[string](ctx, a.store, store.KeyLanguage); ok && lang != "" {
		return lang
	}
	if s, ok := a.store.UserSettings(ctx); ok && s.Language != "" {
		return s.Language
	}
	return a.store.Language()
}

// resolveID finds the record whose id equals or uniquely starts with prefix.
func resolveID[R any](ctx context.Context, s *store.Store, t store.Table[R], idOf func(R) string, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("an id is required")
	}

	var matches []string
	for _, r := range store.GetAll(ctx, s, t) {
		id := idOf(r)
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s record with id %s", t, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %s is ambiguous in %s (%d matches)", prefix, t, len(matches))
	}
}

// --- mood ---

func (a *app) cmdMood(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "show")

	switch sub {
	case "set", "add":
		return a.moodSet(ctx, args)
	case "show":
		return a.moodShow(ctx, args)
	case "week":
		return a.moodWeek(ctx)
	case "history", "list", "ls":
		return a.moodHistory(ctx, args)
	default:
		return fmt.Errorf("unknown mood subcommand: %s (use set, show, week, history)", sub)
	}
}

func (a *app) moodSet(ctx context.Context, args []string) error {
	opts, rest, err := parseArgs(args, []string{"rating", "weather", "emotion", "notes", "music", "date"})
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	rating, err := opts.int("rating", 0)
	if err != nil {
		return err
	}
	date := a.store.Today()
	if opts.has("date") {
		date = opts["date"]
	}

	apply := func(m *store.Mood) {
		if opts.has("rating") {
			m.DirectRating = rating
		}
		if opts.has("weather") {
			m.Weather = opts["weather"]
		}
		if opts.has("emotion") {
			m.Emotion = opts["emotion"]
		}
		if opts.has("notes") {
			m.Notes = opts["notes"]
		}
		if opts.has("music") {
			m.Music = opts["music"]
		}
	}

	existing, found := a.store.MoodByDate(ctx, date)
	merged := existing
	if !found {
		merged = store.Mood{Date: date}
	}
	apply(&merged)
	if err := merged.Validate(); err != nil {
		return err
	}
	if !a.store.MoodRetained(date) {
		return fmt.Errorf("%w: mood date %s is more than %d days old and would be discarded",
			store.ErrInvalidRecord, date, store.MoodRetentionDays)
	}

	var saved store.Mood
	if found {
		saved, _, err = store.Update(ctx, a.store, store.Moods, existing.ID, apply)
	} else {
		saved, err = store.Create(ctx, a.store, store.Moods, merged)
	}
	if err != nil {
		return fmt.Errorf("saving mood: %w", err)
	}

	if err := a.store.CleanupOldMoods(ctx); err != nil {
		a.logger.Warn("mood cleanup failed", "error", err)
	}

	a.ok("Mood saved for %s (%d/%d)", saved.Date, saved.DirectRating, store.MaxMoodRating)
	return nil
}

func (a *app) moodShow(ctx context.Context, args []string) error {
	date := a.store.Today()
	if len(args) > 0 {
		date = args[0]
	}

	a.header("Mood " + date)
	m, ok := a.store.MoodByDate(ctx, date)
	if !ok {
		a.empty("no mood recorded")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rating:\t%d/%d\n", m.DirectRating, store.MaxMoodRating)
	fmt.Fprintf(w, "  Emotion:\t%s\n", m.Emotion)
	fmt.Fprintf(w, "  Weather:\t%s\n", m.Weather)
	if m.Notes != "" {
		fmt.Fprintf(w, "  Notes:\t%s\n", m.Notes)
	}
	if m.Music != "" {
		fmt.Fprintf(w, "  Music:\t%s\n", m.Music)
	}
	w.Flush()
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) moodWeek(ctx context.Context) error {
	a.header("Last 7 days")
	for _, p := range a.store.MoodDataForLast7DaysIn(ctx, a.language(ctx)) {
		bar := gray.Sprint("·")
		if p.Mood > 0 {
			bar = green.Sprint(strings.Repeat("█", p.Mood))
		}
		fmt.Fprintf(a.out, "  %-5s %s %d\n", p.Day, bar, p.Mood)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) moodHistory(ctx context.Context, args []string) error {
	days := store.DefaultHistoryDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("days must be a number, got %q", args[0])
		}
		days = n
	}

	moods := a.store.RecentMoodHistory(ctx, days)
	a.header("Mood history")
	if len(moods) == 0 {
		a.empty("no moods")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  DATE\tRATING\tEMOTION\tWEATHER\tNOTES")
	fmt.Fprintln(w, "  ----\t------\t-------\t-------\t-----")
	for _, m := range moods {
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\t%s\n", m.Date, m.DirectRating, m.Emotion, m.Weather, truncate(m.Notes, 30))
	}
	w.Flush()
	fmt.Fprintln(a.out)
	return nil
}

// --- tasks ---

func taskID(t store.Task) string { return t.ID }

func (a *app) cmdTasks(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")

	switch sub {
	case "list", "ls":
		date := a.store.Today()
		if len(args) > 0 {
			date = args[0]
		}
		return a.tasksList(ctx, date)
	case "add":
		return a.tasksAdd(ctx, args)
	case "done", "complete":
		if len(args) == 0 {
			return fmt.Errorf("usage: tasks done <id>")
		}
		id, err := resolveID(ctx, a.store, store.Tasks, taskID, args[0])
		if err != nil {
			return err
		}
		t, found, err := store.Update(ctx, a.store, store.Tasks, id, func(t *store.Task) { t.Completed = true })
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		if !found {
			return fmt.Errorf("task %s not found", id)
		}
		a.ok("Completed: %s", t.Text)
		return nil
	case "rm", "delete", "remove":
		if len(args) == 0 {
			return fmt.Errorf("usage: tasks rm <id>")
		}
		id, err := resolveID(ctx, a.store, store.Tasks, taskID, args[0])
		if err != nil {
			return err
		}
		if _, err := store.Delete(ctx, a.store, store.Tasks, id); err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}
		a.ok("Task deleted")
		return nil
	default:
		return fmt.Errorf("unknown tasks subcommand: %s (use list, add, done, rm)", sub)
	}
}

func (a *app) tasksList(ctx context.Context, date string) error {
	tasks := a.store.TasksByDate(ctx, date)
	a.header("Tasks " + date)
	if len(tasks) == 0 {
		a.empty("no tasks")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tDONE\tTASK")
	fmt.Fprintln(w, "  --\t----\t----")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "  %s\t[%s]\t%s\n", truncate(t.ID, 8), done, t.Text)
	}
	w.Flush()
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) tasksAdd(ctx context.Context, args []string) error {
	opts, rest, err := parseArgs(args, []string{"date"})
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(rest, " "))
	if text == "" {
		return fmt.Errorf("usage: tasks add <text> [--date YYYY-MM-DD]")
	}

	date := a.store.Today()
	if opts.has("date") {
		date = opts["date"]
	}

	tasks := a.store.TasksByDate(ctx, date)
	active := 0
	order := 0
	for _, t := range tasks {
		if !t.Completed {
			active++
		}
		if t.Order >= order {
			order = t.Order + 1
		}
	}
	if active >= store.MaxActiveTasksPerDay {
		return fmt.Errorf("already %d active tasks for %s, complete one first", active, date)
	}

	t, err := store.Create(ctx, a.store, store.Tasks, store.Task{
		Date:  date,
		Text:  text,
		Order: order,
	})
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	a.ok("Task added %s", gray.Sprint(truncate(t.ID, 8)))
	return nil
}

// --- pomodoro ---

func (a *app) cmdPomodoro(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "show")

	switch sub {
	case "show":
		a.header("Pomodoro " + a.store.Today())
		p, ok := a.store.PomodoroSessionForToday(ctx)
		if !ok {
			a.empty("no sessions today")
			return nil
		}
		fmt.Fprintf(a.out, "  Sessions:   %d\n", p.CompletedSessions)
		fmt.Fprintf(a.out, "  Focus time: %s\n", time.Duration(p.TotalFocusTime)*time.Second)
		fmt.Fprintln(a.out)
		return nil
	case "save":
		if len(args) != 2 {
			return fmt.Errorf("usage: pomodoro save <sessions> <focus>")
		}
		sessions, err := strconv.Atoi(args[0])
		if err != nil || sessions < 0 {
			return fmt.Errorf("sessions must be a non-negative number, got %q", args[0])
		}
		focus, err := parseFocus(args[1])
		if err != nil {
			return err
		}

		p, err := a.store.SavePomodoroSessionForToday(ctx, sessions, int(focus/time.Second))
		if err != nil {
			return fmt.Errorf("saving pomodoro session: %w", err)
		}
		a.ok("%d sessions, %s focus on %s", p.CompletedSessions, focus, p.Date)
		return nil
	default:
		return fmt.Errorf("unknown pomodoro subcommand: %s (use show, save)", sub)
	}
}

// parseFocus accepts a Go duration ("1h15m") or a bare number of minutes.
func parseFocus(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		minutes, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, fmt.Errorf("focus must be a duration like 50m, got %q", s)
		}
		d = time.Duration(minutes) * time.Minute
	}
	if d < 0 {
		return 0, fmt.Errorf("focus cannot be negative")
	}
	return d.Truncate(time.Second), nil
}

// --- moodboard ---

func boardID(m store.MoodboardItem) string { return m.ID }

func (a *app) cmdBoard(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")

	switch sub {
	case "list", "ls":
		items := store.GetAll(ctx, a.store, store.MoodboardItems)
		a.header("Moodboard")
		if len(items) == 0 {
			a.empty("empty moodboard")
			return nil
		}
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tCAPTION\tSOURCE")
		fmt.Fprintln(w, "  --\t-------\t------")
		for _, m := range items {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", truncate(m.ID, 8), m.Caption, truncate(m.Src, 40))
		}
		w.Flush()
		fmt.Fprintln(a.out)
		return nil
	case "add":
		if len(args) == 0 {
			return fmt.Errorf("usage: board add <src> [caption]")
		}
		item, err := store.Create(ctx, a.store, store.MoodboardItems, store.MoodboardItem{
			Src:     args[0],
			Caption: strings.Join(args[1:], " "),
		})
		if err != nil {
			return fmt.Errorf("adding moodboard item: %w", err)
		}
		a.ok("Added to moodboard %s", gray.Sprint(truncate(item.ID, 8)))
		return nil
	case "caption":
		if len(args) < 1 {
			return fmt.Errorf("usage: board caption <id> <caption>")
		}
		id, err := resolveID(ctx, a.store, store.MoodboardItems, boardID, args[0])
		if err != nil {
			return err
		}
		caption := strings.Join(args[1:], " ")
		_, found, err := store.Update(ctx, a.store, store.MoodboardItems, id, func(m *store.MoodboardItem) {
			m.Caption = caption
		})
		if err != nil {
			return fmt.Errorf("updating caption: %w", err)
		}
		if !found {
			return fmt.Errorf("moodboard item %s not found", id)
		}
		a.ok("Caption updated")
		return nil
	case "rm", "delete", "remove":
		if len(args) == 0 {
			return fmt.Errorf("usage: board rm <id>")
		}
		id, err := resolveID(ctx, a.store, store.MoodboardItems, boardID, args[0])
		if err != nil {
			return err
		}
		if _, err := store.Delete(ctx, a.store, store.MoodboardItems, id); err != nil {
			return fmt.Errorf("deleting moodboard item: %w", err)
		}
		a.ok("Removed from moodboard")
		return nil
	default:
		return fmt.Errorf("unknown board subcommand: %s (use list, add, caption, rm)", sub)
	}
}

// --- aesthetic cards ---

func (a *app) cmdCards(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")

	switch sub {
	case "list", "ls":
		limit := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("limit must be a number, got %q", args[0])
			}
			limit = n
		}
		cards := a.store.RecentAestheticCards(ctx, limit)
		a.header("Aesthetic cards")
		if len(cards) == 0 {
			a.empty("no cards")
			return nil
		}
		for _, c := range cards {
			yellow.Fprintf(a.out, "  %s", c.Title)
			if c.Subtitle != "" {
				fmt.Fprintf(a.out, " · %s", c.Subtitle)
			}
			fmt.Fprintln(a.out)
			if c.Message != "" {
				fmt.Fprintf(a.out, "    %s\n", c.Message)
			}
			gray.Fprintf(a.out, "    %s on %s, %s, %s\n", c.TextColor, c.BackgroundColor, c.Shape, c.CreatedAt.In(a.store.Now().Location()).Format("Jan 02 15:04"))
		}
		fmt.Fprintln(a.out)
		return nil
	case "draft":
		draft, ok := store.GetValue[store.AestheticCard](ctx, a.store, store.KeyCardAesthetic)
		a.header("Card draft")
		if !ok {
			a.empty("no draft yet")
			return nil
		}
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Title:\t%s\n", draft.Title)
		fmt.Fprintf(w, "  Background:\t%s\n", draft.BackgroundColor)
		fmt.Fprintf(w, "  Text color:\t%s\n", draft.TextColor)
		fmt.Fprintf(w, "  Shape:\t%s\n", draft.Shape)
		w.Flush()
		fmt.Fprintln(a.out)
		return nil
	case "add", "save":
		opts, rest, err := parseArgs(args, []string{"title", "subtitle", "message", "background", "text-color", "shape"})
		if err != nil {
			return err
		}
		if len(rest) > 0 {
			return fmt.Errorf("unexpected argument: %s", rest[0])
		}
		if opts["title"] == "" {
			return fmt.Errorf("usage: cards add --title T [--subtitle S] [--message M] [--background C] [--text-color C] [--shape S]")
		}

		// Unset style fields come from the last card draft
		draft, _ := store.GetValue[store.AestheticCard](ctx, a.store, store.KeyCardAesthetic)
		draft.Meta = store.Meta{}
		draft.Title = opts["title"]
		draft.Subtitle = opts["subtitle"]
		draft.Message = opts["message"]
		if opts.has("background") {
			draft.BackgroundColor = opts["background"]
		}
		if opts.has("text-color") {
			draft.TextColor = opts["text-color"]
		}
		if opts.has("shape") {
			draft.Shape = opts["shape"]
		}
		card, err := store.Create(ctx, a.store, store.AestheticCards, draft)
		if err != nil {
			return fmt.Errorf("saving card: %w", err)
		}
		_ = a.store.SetValue(ctx, store.KeyCardAesthetic, draft)
		if err := a.store.CleanupOldAestheticCards(ctx); err != nil {
			return fmt.Errorf("cleaning up cards: %w", err)
		}
		a.ok("Card saved: %s", card.Title)
		return nil
	default:
		return fmt.Errorf("unknown cards subcommand: %s (use list, add, draft)", sub)
	}
}

// --- feedback ---

func (a *app) cmdFeedback(ctx context.Context, args []string) error {
	opts, rest, err := parseArgs(args, []string{"type", "rating"})
	if err != nil {
		return err
	}
	rating, err := opts.int("rating", 0)
	if err != nil {
		return err
	}
	kind := store.FeedbackComment
	if opts.has("type") {
		kind = opts["type"]
	}

	f := store.Feedback{
		Type:    kind,
		Content: strings.TrimSpace(strings.Join(rest, " ")),
		Rating:  rating,
	}
	if err := f.Validate(); err != nil {
		return err
	}

	if _, err := store.Create(ctx, a.store, store.UserFeedback, f); err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}
	a.ok("Thanks for your feedback")
	return nil
}

// --- chat ---

func (a *app) cmdChat(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "today")

	switch sub {
	case "today", "show":
		turns := a.store.TodayConversations(ctx)
		a.header("Chat " + a.store.Today())
		if len(turns) == 0 {
			a.empty("no messages today")
			return nil
		}
		for _, c := range turns {
			who := cyan.Sprint("you")
			if c.Role == store.RoleAssistant {
				who = yellow.Sprint("assistant")
			}
			fmt.Fprintf(a.out, "  %s %s: %s\n", gray.Sprint(c.CreatedAt.In(a.store.Now().Location()).Format("15:04")), who, c.Message)
		}
		fmt.Fprintln(a.out)
		return nil
	case "say":
		opts, rest, err := parseArgs(args, []string{"role"})
		if err != nil {
			return err
		}
		role := store.RoleUser
		if opts.has("role") {
			role = opts["role"]
		}
		if role != store.RoleUser && role != store.RoleAssistant {
			return fmt.Errorf("role must be %q or %q, got %q", store.RoleUser, store.RoleAssistant, role)
		}
		message := strings.TrimSpace(strings.Join(rest, " "))
		if message == "" {
			return fmt.Errorf("usage: chat say [--role user|assistant] <message>")
		}
		if _, err := a.store.SaveConversation(ctx, message, role); err != nil {
			return fmt.Errorf("saving message: %w", err)
		}
		a.ok("Message saved")
		return nil
	default:
		return fmt.Errorf("unknown chat subcommand: %s (use say, today)", sub)
	}
}

// --- settings ---

func (a *app) cmdSettings(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "show")

	switch sub {
	case "show":
		settings, ok := a.currentSettings(ctx)
		title := "Settings"
		if !ok {
			title = "Settings (defaults)"
		}
		a.header(title)

		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Theme:\t%s\n", settings.Theme)
		fmt.Fprintf(w, "  Language:\t%s\n", settings.Language)
		fmt.Fprintf(w, "  Animation:\t%s\n", settings.AnimationType)
		fmt.Fprintf(w, "  Animations:\t%s\n", onOff(settings.AnimationEnabled))
		if len(settings.CustomTheme) > 0 {
			fmt.Fprintf(w, "  Custom theme:\t%s\n", settings.CustomTheme)
		}
		w.Flush()
		fmt.Fprintln(a.out)
		return nil
	case "set":
		patch, err := parseSettingsPatch(args)
		if err != nil {
			return err
		}
		settings, err := a.store.UpdateUserSettings(ctx, patch)
		if err != nil {
			return fmt.Errorf("updating settings: %w", err)
		}
		a.mirrorSettings(ctx, patch)
		a.ok("Settings saved (theme %s, language %s)", settings.Theme, settings.Language)
		return nil
	default:
		return fmt.Errorf("unknown settings subcommand: %s (use show, set)", sub)
	}
}

// currentSettings returns the settings record overlaid with the scalar
// preferences, which win when present. It reports false when neither exists.
func (a *app) currentSettings(ctx context.Context) (store.UserSettings, bool) {
	settings, found := a.store.UserSettings(ctx)
	if !found {
		settings = store.DefaultUserSettings()
	}

	if v, ok := store.GetValue[string](ctx, a.store, store.KeyTheme); ok {
		settings.Theme, found = v, true
	}
	if v, ok := store.GetValue[string](ctx, a.store, store.KeyLanguage); ok {
		settings.Language, found = v, true
	}
	if v, ok := store.GetValue[string](ctx, a.store, store.KeyAnimationType); ok {
		settings.AnimationType, found = v, true
	}
	if v, ok := store.GetValue[bool](ctx, a.store, store.KeyAnimationEnabled); ok {
		settings.AnimationEnabled, found = v, true
	}
	if v, ok := store.GetValue[json.RawMessage](ctx, a.store, store.KeyCustomTheme); ok {
		settings.CustomTheme, found = v, true
	}
	return settings, found
}

// mirrorSettings writes each patched field to its scalar preference key.
// Writes are best effort; failures are logged by the store.
func (a *app) mirrorSettings(ctx context.Context, patch store.SettingsPatch) {
	if patch.Theme != nil {
		_ = a.store.SetValue(ctx, store.KeyTheme, *patch.Theme)
	}
	if patch.Language != nil {
		_ = a.store.SetValue(ctx, store.KeyLanguage, *patch.Language)
	}
	if patch.AnimationType != nil {
		_ = a.store.SetValue(ctx, store.KeyAnimationType, *patch.AnimationType)
	}
	if patch.AnimationEnabled != nil {
		_ = a.store.SetValue(ctx, store.KeyAnimationEnabled, *patch.AnimationEnabled)
	}
	if patch.ClearCustomTheme {
		_ = a.store.DeleteValue(ctx, store.KeyCustomTheme)
	} else if len(patch.CustomTheme) > 0 {
		_ = a.store.SetValue(ctx, store.KeyCustomTheme, patch.CustomTheme)
	}
}

func parseSettingsPatch(args []string) (store.SettingsPatch, error) {
	var patch store.SettingsPatch

	opts, rest, err := parseArgs(args,
		[]string{"theme", "language", "animation", "animations", "custom-theme"},
		"clear-custom-theme")
	if err != nil {
		return patch, err
	}
	if len(rest) > 0 {
		return patch, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if len(opts) == 0 {
		return patch, fmt.Errorf("usage: settings set [--theme T] [--language fr|en] [--animation A] [--animations on|off] [--custom-theme JSON] [--clear-custom-theme]")
	}

	if v, ok := opts["theme"]; ok {
		patch.Theme = &v
	}
	if v, ok := opts["language"]; ok {
		if v != store.LanguageFrench && v != store.LanguageEnglish {
			return patch, fmt.Errorf("language must be %q or %q, got %q", store.LanguageFrench, store.LanguageEnglish, v)
		}
		patch.Language = &v
	}
	if v, ok := opts["animation"]; ok {
		patch.AnimationType = &v
	}
	if v, ok := opts["animations"]; ok {
		enabled, err := parseOnOff(v)
		if err != nil {
			return patch, err
		}
		patch.AnimationEnabled = &enabled
	}
	if v, ok := opts["custom-theme"]; ok {
		if !json.Valid([]byte(v)) {
			return patch, fmt.Errorf("--custom-theme must be valid JSON")
		}
		patch.CustomTheme = json.RawMessage(v)
	}
	if opts.has("clear-custom-theme") {
		if patch.CustomTheme != nil {
			return patch, fmt.Errorf("--custom-theme and --clear-custom-theme are mutually exclusive")
		}
		patch.ClearCustomTheme = true
	}
	return patch, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

// --- maintenance ---

func (a *app) cmdExport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.store.WriteExport(ctx, a.out)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := a.store.WriteExport(ctx, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}

	a.ok("Exported to %s", args[0])
	return nil
}

func (a *app) cmdCleanup(ctx context.Context) error {
	err := errors.Join(
		a.store.CleanupOldMoods(ctx),
		a.store.CleanupOldAestheticCards(ctx),
		a.store.CleanupOldConversations(ctx),
	)
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}
	a.ok("Old moods, cards and messages cleaned up")
	return nil
}

func (a *app) cmdClear(ctx context.Context, args []string) error {
	opts, rest, err := parseArgs(args, nil, "yes")
	if err != nil {
		return err
	}
	if !opts.has("yes") {
		return fmt.Errorf("refusing to clear without --yes")
	}

	if len(rest) == 0 {
		if err := a.store.ClearAll(ctx); err != nil {
			return err
		}
		a.ok("All local data cleared")
		return nil
	}

	name := rest[0]
	if err := a.clearTable(ctx, name); err != nil {
		return err
	}
	a.ok("Cleared %s", name)
	return nil
}

func (a *app) clearTable(ctx context.Context, name string) error {
	switch name {
	case store.Settings.Name():
		return store.ClearTable(ctx, a.store, store.Settings)
	case store.Moods.Name():
		return store.ClearTable(ctx, a.store, store.Moods)
	case store.Tasks.Name():
		return store.ClearTable(ctx, a.store, store.Tasks)
	case store.MoodboardItems.Name():
		return store.ClearTable(ctx, a.store, store.MoodboardItems)
	case store.AestheticCards.Name():
		return store.ClearTable(ctx, a.store, store.AestheticCards)
	case store.PomodoroSessions.Name():
		return store.ClearTable(ctx, a.store, store.PomodoroSessions)
	case store.UserFeedback.Name():
		return store.ClearTable(ctx, a.store, store.UserFeedback)
	case store.Metadata.Name():
		return store.ClearTable(ctx, a.store, store.Metadata)
	case store.Conversations.Name():
		return store.ClearTable(ctx, a.store, store.Conversations)
	}
	return fmt.Errorf("unknown table %q (tables: %s)", name, strings.Join(store.TableNames(), ", "))
}

// --- nudges ---

func (a *app) cmdNudges(ctx context.Context) error {
	lang := a.language(ctx)
	shown := false

	if a.nudges.Welcome(ctx) {
		cyan.Fprintf(a.out, "  %s\n", nudges.WelcomeMessage(lang))
		shown = true
	}
	if r, ok := a.nudges.ProductivityReminder(ctx); ok {
		yellow.Fprintf(a.out, "  %s\n", nudges.ReminderMessage(lang, r))
		shown = true
	}
	if n, ok := a.nudges.TaskEncouragement(ctx); ok {
		green.Fprintf(a.out, "  %s\n", nudges.EncouragementMessage(lang, n))
		shown = true
	}

	if !shown {
		gray.Fprintln(a.out, "  (nothing right now)")
	}
	return nil
}
