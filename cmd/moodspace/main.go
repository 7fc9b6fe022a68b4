// ABOUTME: Entry point for the moodspace command line journal
// ABOUTME: Loads config, opens the key-value backend and dispatches user commands

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/moodspace/internal/config"
	"github.com/2389/moodspace/internal/kv"
	"github.com/2389/moodspace/internal/nudges"
	"github.com/2389/moodspace/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                             _
  _ __ ___   ___   ___   __| |___ _ __   __ _  ___ ___
 | '_ ' _ \ / _ \ / _ \ / _' / __| '_ \ / _' |/ __/ _ \
 | | | | | | (_) | (_) | (_| \__ \ |_) | (_| | (_|  __/
 |_| |_| |_|\___/ \___/ \__,_|___/ .__/ \__,_|\___\___|
                                 |_|
`

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	case "version", "--version":
		fmt.Println(version)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cmd, args); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	configPath := config.ConfigPath()
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	logger.Debug("starting moodspace",
		"config", configPath,
		"driver", cfg.Database.Driver,
		"path", cfg.Database.Path,
	)

	backend, err := kv.NewSQLiteStore(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer backend.Close()

	a := newApp(store.New(backend, store.Options{
		MaxRows:  cfg.Store.MaxRows,
		Location: cfg.Store.Location,
		Language: cfg.Store.Language,
		Logger:   logger,
	}), os.Stdout, logger)

	if _, err := a.store.RecordVisit(ctx); err != nil {
		logger.Warn("recording visit", "error", err)
	}

	return a.dispatch(ctx, cmd, args)
}

// app holds what every command needs.
type app struct {
	store  *store.Store
	nudges *nudges.Service
	out    io.Writer
	logger *slog.Logger
}

func newApp(s *store.Store, out io.Writer, logger *slog.Logger) *app {
	if logger == nil {
		logger = slog.Default()
	}
	return &app{
		store:  s,
		nudges: nudges.New(s, logger),
		out:    out,
		logger: logger,
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "mood", "moods":
		return a.cmdMood(ctx, args)
	case "tasks", "task":
		return a.cmdTasks(ctx, args)
	case "pomodoro":
		return a.cmdPomodoro(ctx, args)
	case "board", "moodboard":
		return a.cmdBoard(ctx, args)
	case "cards", "card":
		return a.cmdCards(ctx, args)
	case "feedback":
		return a.cmdFeedback(ctx, args)
	case "chat":
		return a.cmdChat(ctx, args)
	case "settings":
		return a.cmdSettings(ctx, args)
	case "export":
		return a.cmdExport(ctx, args)
	case "cleanup":
		return a.cmdCleanup(ctx)
	case "clear":
		return a.cmdClear(ctx, args)
	case "nudges":
		return a.cmdNudges(ctx)
	case "help", "-h", "--help":
		printUsage(a.out)
		return nil
	default:
		return fmt.Errorf("unknown command: %s (see moodspace help)", cmd)
	}
}

func printUsage(w io.Writer) {
	cyan.Fprint(w, banner)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: moodspace <command> [args]")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  mood set --rating N [--weather W] [--emotion E] [--notes T] [--music M] [--date D]")
	fmt.Fprintln(w, "                                Record (or update) the mood for a day")
	fmt.Fprintln(w, "  mood show [date]              Show the mood for a day (default today)")
	fmt.Fprintln(w, "  mood week                     Show the last 7 days chart")
	fmt.Fprintln(w, "  mood history [days]           List recent moods, newest first")
	fmt.Fprintln(w, "  tasks [list] [date]           List tasks for a day")
	fmt.Fprintln(w, "  tasks add <text> [--date D]   Add a task (max 5 active per day)")
	fmt.Fprintln(w, "  tasks done <id>               Mark a task completed")
	fmt.Fprintln(w, "  tasks rm <id>                 Delete a task")
	fmt.Fprintln(w, "  pomodoro [show]               Show today's focus sessions")
	fmt.Fprintln(w, "  pomodoro save <sessions> <focus>")
	fmt.Fprintln(w, "                                Save today's totals (focus like 50m)")
	fmt.Fprintln(w, "  board [list]                  List moodboard items")
	fmt.Fprintln(w, "  board add <src> [caption]     Add an image to the moodboard")
	fmt.Fprintln(w, "  board caption <id> <caption>  Change an item caption")
	fmt.Fprintln(w, "  board rm <id>                 Delete a moodboard item")
	fmt.Fprintln(w, "  cards [list] [limit]          Show the most recent aesthetic cards")
	fmt.Fprintln(w, "  cards add --title T [...]     Save an aesthetic card")
	fmt.Fprintln(w, "  cards draft                   Show the style reused by the next card")
	fmt.Fprintln(w, "  feedback [--type K] [--rating N] <text>")
	fmt.Fprintln(w, "                                Leave a comment, suggestion or bug report")
	fmt.Fprintln(w, "  chat say [--role R] <message> Append a chat turn for today")
	fmt.Fprintln(w, "  chat [today]                  Show today's chat")
	fmt.Fprintln(w, "  settings [show]               Show user settings")
	fmt.Fprintln(w, "  settings set [--theme T] [--language L] [--animation A] [--animations on|off]")
	fmt.Fprintln(w, "               [--custom-theme JSON] [--clear-custom-theme]")
	fmt.Fprintln(w, "  export [file]                 Write every table as JSON")
	fmt.Fprintln(w, "  cleanup                       Apply retention to moods, cards and chat")
	fmt.Fprintln(w, "  clear [table] --yes           Clear one table or all local data")
	fmt.Fprintln(w, "  nudges                        Show due notifications")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MOODSPACE_CONFIG   Config file (default: $XDG_CONFIG_HOME/moodspace/config.yaml)")
	fmt.Fprintln(w)
}
