package session

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is one chat transcript. It replaces process-wide chat history:
// every caller owns the sessions it created.
type Session struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewSession(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Append adds a message, drops the oldest ones beyond maxMessages (when
// positive) and extends the session lifetime by ttl.
func (s *Session) Append(role Role, content string, maxMessages int, ttl time.Duration) Message {
	now := time.Now()
	msg := Message{Role: role, Content: content, CreatedAt: now}
	s.Messages = append(s.Messages, msg)
	if maxMessages > 0 && len(s.Messages) > maxMessages {
		s.Messages = append([]Message(nil), s.Messages[len(s.Messages)-maxMessages:]...)
	}
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
	return msg
}

// TTL is how long the session still has to live, never negative.
func (s *Session) TTL() time.Duration {
	ttl := time.Until(s.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
