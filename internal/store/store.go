// ABOUTME: Local table store constructor, options and calendar helpers
// ABOUTME: Every table is one JSON array stored under its name in a kv.Store

package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/2389/moodspace/internal/kv"
)

// DefaultMaxRows is the retention cap applied by Create to every table.
const DefaultMaxRows = 7

// DateLayout is the format of every record date field.
const DateLayout = "2006-01-02"

// Options configures a Store. The zero value is usable.
type Options struct {
	// MaxRows caps table length on Create. Zero means DefaultMaxRows,
	// a negative value disables the cap.
	MaxRows int

	// Location decides which calendar day "today" is. Defaults to UTC.
	Location *time.Location

	// Language selects weekday labels ("fr" or "en"). Defaults to "fr".
	Language string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// NewID generates record ids. Defaults to random UUIDs.
	NewID func() string

	Logger *slog.Logger
}

// Store is the local table store. It holds no table state of its own; every
// operation reads and rewrites whole tables through the backend. Operations on
// the same table are not serialised, so interleaved writers can lose updates.
type Store struct {
	kv       kv.Store
	maxRows  int
	loc      *time.Location
	language string
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
}

// New creates a Store on top of backend.
func New(backend kv.Store, opts Options) *Store {
	s := &Store{
		kv:       backend,
		maxRows:  opts.MaxRows,
		loc:      opts.Location,
		language: opts.Language,
		now:      opts.Now,
		newID:    opts.NewID,
		logger:   opts.Logger,
	}
	if s.maxRows == 0 {
		s.maxRows = DefaultMaxRows
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.language == "" {
		s.language = LanguageFrench
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "store")
	return s
}

// stamp returns the current time for created_at/updated_at fields.
func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

// Now returns the current time in the store's location.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// Language returns the language used for weekday labels.
func (s *Store) Language() string {
	return s.language
}

// Today returns the current calendar date as YYYY-MM-DD.
func (s *Store) Today() string {
	return s.Now().Format(DateLayout)
}

// parseDate interprets a YYYY-MM-DD string as midnight in the store's location.
func (s *Store) parseDate(date string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
