// ABOUTME: Record types and table descriptors for every moodspace table
// ABOUTME: Each Table[R] binds a key-space name to its strongly typed record

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRecord is returned by record Validate methods.
var ErrInvalidRecord = errors.New("invalid record")

// Meta holds the fields every record carries. It is embedded in each record type
// so the JSON encoding stays flat.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meta) meta() *Meta { return m }

// record is satisfied by pointers to the record types of this package.
type record[R any] interface {
	*R
	meta() *Meta
}

// Table names a stored collection of R records.
type Table[R any] struct {
	name string
}

// Name returns the key the table array is stored under.
func (t Table[R]) Name() string { return t.name }

func (t Table[R]) String() string { return t.name }

// Tables known to the store, in export order.
var (
	Settings         = Table[UserSettings]{name: "user_settings"}
	Moods            = Table[Mood]{name: "moods"}
	Tasks            = Table[Task]{name: "tasks"}
	MoodboardItems   = Table[MoodboardItem]{name: "moodboard_items"}
	AestheticCards   = Table[AestheticCard]{name: "aesthetic_cards"}
	PomodoroSessions = Table[PomodoroSession]{name: "pomodoro_sessions"}
	UserFeedback     = Table[Feedback]{name: "user_feedback"}
	Metadata         = Table[AppMetadata]{name: "app_metadata"}
	Conversations    = Table[Conversation]{name: "conversations"}
)

var tableNames = []string{
	Settings.name,
	Moods.name,
	Tasks.name,
	MoodboardItems.name,
	AestheticCards.name,
	PomodoroSessions.name,
	UserFeedback.name,
	Metadata.name,
	Conversations.name,
}

// TableNames returns the name of every known table.
func TableNames() []string {
	out := make([]string, len(tableNames))
	copy(out, tableNames)
	return out
}

// IsTableName reports whether key is reserved for a table array.
func IsTableName(key string) bool {
	for _, n := range tableNames {
		if n == key {
			return true
		}
	}
	return false
}

// UserSettings is the per-device preferences singleton.
type UserSettings struct {
	Meta
	Theme            string          `json:"theme"`
	Language         string          `json:"language"`
	AnimationType    string          `json:"animation_type"`
	AnimationEnabled bool            `json:"animation_enabled"`
	CustomTheme      json.RawMessage `json:"custom_theme,omitempty"`
}

// Mood is one journal entry per calendar date.
type Mood struct {
	Meta
	Date         string `json:"date"` // YYYY-MM-DD
	Weather      string `json:"weather"`
	Emotion      string `json:"emotion"`
	DirectRating int    `json:"direct_rating"` // 1-10
	Notes        string `json:"notes,omitempty"`
	Music        string `json:"music,omitempty"`
}

// Rating bounds for moods.
const (
	MinMoodRating = 1
	MaxMoodRating = 10
)

// Validate checks the date format and rating range.
func (m Mood) Validate() error {
	if _, err := time.Parse(DateLayout, m.Date); err != nil {
		return fmt.Errorf("%w: mood date %q is not YYYY-MM-DD", ErrInvalidRecord, m.Date)
	}
	if m.DirectRating < MinMoodRating || m.DirectRating > MaxMoodRating {
		return fmt.Errorf("%w: mood rating %d outside %d-%d", ErrInvalidRecord, m.DirectRating, MinMoodRating, MaxMoodRating)
	}
	return nil
}

// Task is a daily to-do entry.
type Task struct {
	Meta
	Date      string `json:"date"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

// MaxActiveTasksPerDay is the cap the task list UI enforces before creating a task.
const MaxActiveTasksPerDay = 5

// MoodboardItem is an image reference with a caption.
type MoodboardItem struct {
	Meta
	Src     string `json:"src"` // data URI or remote URL
	Caption string `json:"caption"`
}

// AestheticCard is a snapshot of a customised card.
type AestheticCard struct {
	Meta
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Message         string `json:"message"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	Shape           string `json:"shape"`
}

// PomodoroSession tracks focus sessions for one calendar date.
type PomodoroSession struct {
	Meta
	Date              string `json:"date"`
	CompletedSessions int    `json:"completed_sessions"`
	TotalFocusTime    int    `json:"total_focus_time"` // seconds
}

// FeedbackKind values
const (
	FeedbackComment    = "comment"
	FeedbackSuggestion = "suggestion"
	FeedbackBugReport  = "bug_report"
)

// Feedback is an append-only user comment.
type Feedback struct {
	Meta
	Type    string `json:"type"`
	Content string `json:"content"`
	Rating  int    `json:"rating,omitempty"` // 1-5, 0 when unrated
}

// Validate checks the kind, content and optional rating.
func (f Feedback) Validate() error {
	switch f.Type {
	case FeedbackComment, FeedbackSuggestion, FeedbackBugReport:
	default:
		return fmt.Errorf("%w: unknown feedback type %q", ErrInvalidRecord, f.Type)
	}
	if f.Content == "" {
		return fmt.Errorf("%w: feedback content is empty", ErrInvalidRecord)
	}
	if f.Rating != 0 && (f.Rating < 1 || f.Rating > 5) {
		return fmt.Errorf("%w: feedback rating %d outside 1-5", ErrInvalidRecord, f.Rating)
	}
	return nil
}

// AppMetadata tracks visits to the app.
type AppMetadata struct {
	Meta
	LastVisit  time.Time `json:"last_visit"`
	VisitCount int       `json:"visit_count"`
}

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is one chat turn, tagged with the date it was said.
type Conversation struct {
	Meta
	Date    string `json:"date"`
	Message string `json:"message"`
	Role    string `json:"role"`
}
