// ABOUTME: Assistant chat transcript limited to the current day
// ABOUTME: Saving a turn discards every turn not dated today

package store

import "context"

// todaysConversations filters rows down to those dated today.
func todaysConversations(rows []Conversation, today string) []Conversation {
	kept := make([]Conversation, 0, len(rows))
	for _, c := range rows {
		if c.Date == today {
			kept = append(kept, c)
		}
	}
	return kept
}

// SaveConversation appends a chat turn for today after dropping every turn from
// earlier days. It writes the table directly and is not subject to the Create
// retention cap.
func (s *Store) SaveConversation(ctx context.Context, message, role string) (Conversation, error) {
	today := s.Today()
	rows := todaysConversations(GetAll(ctx, s, Conversations), today)

	now := s.stamp()
	c := Conversation{
		Meta: Meta{
			ID:        s.newID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Date:    today,
		Message: message,
		Role:    role,
	}
	rows = append(rows, c)

	if err := saveTable(ctx, s, Conversations.name, rows); err != nil {
		return Conversation{}, err
	}
	return c, nil
}

// TodayConversations returns today's chat turns in the order they were saved.
func (s *Store) TodayConversations(ctx context.Context) []Conversation {
	return todaysConversations(GetAll(ctx, s, Conversations), s.Today())
}

// CleanupOldConversations drops every chat turn not dated today.
func (s *Store) CleanupOldConversations(ctx context.Context) error {
	return saveTable(ctx, s, Conversations.name, s.TodayConversations(ctx))
}
