package repository

import (
	"context"

	"github.com/NeuralTrust/FraudShield/pkg/domain"
	"github.com/NeuralTrust/FraudShield/pkg/domain/session"
	"github.com/NeuralTrust/FraudShield/pkg/infra/cache"
)

// MemorySessionRepository keeps sessions in process memory. Sessions are
// copied on the way in and out so callers never share a transcript slice.
type MemorySessionRepository struct {
	sessions *cache.TTLMap
}

func NewMemorySessionRepository(sessions *cache.TTLMap) session.Repository {
	return &MemorySessionRepository{sessions: sessions}
}

func (r *MemorySessionRepository) Save(_ context.Context, s *session.Session) error {
	r.sessions.SetWithTTL(s.ID, clone(s), s.TTL())
	return nil
}

func (r *MemorySessionRepository) GetByID(_ context.Context, sessionID string) (*session.Session, error) {
	value, ok := r.sessions.Get(sessionID)
	if !ok {
		return nil, domain.NewNotFoundError(sessionEntity, sessionID)
	}
	s, ok := value.(*session.Session)
	if !ok {
		return nil, domain.NewNotFoundError(sessionEntity, sessionID)
	}
	return clone(s), nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, sessionID string) error {
	r.sessions.Delete(sessionID)
	return nil
}

func clone(s *session.Session) *session.Session {
	c := *s
	c.Messages = append([]session.Message(nil), s.Messages...)
	return &c
}
