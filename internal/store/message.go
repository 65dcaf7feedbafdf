package store

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
)

const messageNamespace = "message-storage"

// messageState is the persisted layout of the message namespace.
type messageState struct {
	Messages []models.Message `json:"messages"`
}

// MessageStore owns the internal mail between users.
type MessageStore struct {
	base
	messages []models.Message
}

// MessageInput is the caller-supplied part of a new message.
type MessageInput struct {
	From    string
	To      string
	Subject string
	Content string
}

// NewMessageStore rehydrates the collection from its namespace.
func NewMessageStore(ctx context.Context, store kv.Store, log *zap.Logger) (*MessageStore, error) {
	s := &MessageStore{base: newBase(store, messageNamespace, log)}
	var state messageState
	found, err := s.load(ctx, &state)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	if found {
		s.messages = state.Messages
	}
	return s, nil
}

// Add creates an unread message stamped with both the human-facing date and
// the numeric instant used for ordering, prepended so the collection stays
// newest-first.
func (s *MessageStore) Add(input MessageInput) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	m := models.Message{
		ID:        newID(now),
		From:      input.From,
		To:        input.To,
		Subject:   input.Subject,
		Content:   input.Content,
		CreatedAt: now.Format(dateLayout),
		SentAt:    now.UnixMilli(),
		Read:      false,
	}
	s.messages = append([]models.Message{m}, s.messages...)
	s.persist(messageState{Messages: s.messages})
	return m
}

// MarkAsRead flips the message to read. It is idempotent and never reverts;
// an unknown id is ignored.
func (s *MessageStore) MarkAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			if !s.messages[i].Read {
				s.messages[i].Read = true
				s.persist(messageState{Messages: s.messages})
			}
			return
		}
	}
}

// Delete removes the message with the given id, if present.
func (s *MessageStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			s.persist(messageState{Messages: s.messages})
			return
		}
	}
}

// List returns a copy of the collection in its maintained order.
func (s *MessageStore) List() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// UnreadCount returns the number of unread messages addressed to the user.
func (s *MessageStore) UnreadCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.messages {
		if m.To == userID && !m.Read {
			n++
		}
	}
	return n
}

// UserMessages returns every message the user sent or received, newest
// first by the numeric sent instant, with id as tiebreaker.
func (s *MessageStore) UserMessages(userID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Message
	for _, m := range s.messages {
		if m.To == userID || m.From == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SentAt != out[j].SentAt {
			return out[i].SentAt > out[j].SentAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}
