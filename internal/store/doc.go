// Package store provides the local table store behind moodspace.
//
// # Architecture
//
// A Store sits on a kv.Store and keeps each table as one JSON array stored under
// the table's name. Every operation reads the whole array, works on it in memory
// and writes the whole array back; there are no field-level writes.
//
// Tables are declared as typed descriptors:
//
//   - Settings: UserSettings singleton (theme, language, animation, custom theme)
//   - Moods: one Mood per date (weather, emotion, rating 1-10)
//   - Tasks: daily Task entries with a display order
//   - MoodboardItems: images with captions
//   - AestheticCards: card snapshots, two most recent kept
//   - PomodoroSessions: one PomodoroSession per date
//   - UserFeedback: append-only Feedback
//   - Metadata: AppMetadata visit tracking
//   - Conversations: today's assistant chat turns
//
// Generic functions operate on any table:
//
//	mood, err := store.Create(ctx, s, store.Moods, store.Mood{Date: "2024-06-01", DirectRating: 7})
//	all := store.GetAll(ctx, s, store.Moods)
//	_, found, err := store.Update(ctx, s, store.Moods, mood.ID, func(m *store.Mood) { m.DirectRating = 9 })
//
// # Retention
//
// Create evicts the oldest record of a table once it grows past Options.MaxRows
// (7 by default), whatever the table. Table-specific routines add age and recency
// based cleanup: CleanupOldMoods, CleanupOldAestheticCards, CleanupOldConversations.
//
// # Scalar values
//
// GetValue and SetValue store preferences under arbitrary keys in the same key
// space as the tables. Keys that name a table are refused with ErrReservedKey.
//
// # Error Handling
//
//   - Reads (GetAll, GetByID, GetValue and the queries) never fail; unreadable
//     data is logged and reported as empty or absent
//   - SetValue logs and returns write failures; callers may ignore them
//   - Create, Update, Delete, ClearTable, ClearAll and the cleanups return
//     write failures wrapped
//   - A missing id or date is reported with a false boolean, never an error
//
// # Concurrency
//
// The store does no locking. Two read-modify-write operations interleaved on the
// same table can lose one of the updates. The app has a single user writing at
// low frequency, so this is accepted.
//
// # Uniqueness
//
// The store does not enforce one mood or pomodoro session per date. Callers look
// the date up first and Update instead of Create when a record exists.
package store
