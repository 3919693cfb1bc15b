package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NeuralTrust/FraudShield/pkg/domain"
	"github.com/NeuralTrust/FraudShield/pkg/domain/session"
	"github.com/NeuralTrust/FraudShield/pkg/infra/cache"
)

const (
	SessionKeyPattern = "chat:session:%s"
	sessionEntity     = "chat session"
)

// SessionRepository stores each session as a JSON value that expires
// together with the session.
type SessionRepository struct {
	cache cache.Client
}

func NewSessionRepository(c cache.Client) session.Repository {
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	ttl := s.TTL()
	if ttl <= 0 {
		return r.Delete(ctx, s.ID)
	}

	sessionJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return r.cache.Set(ctx, fmt.Sprintf(SessionKeyPattern, s.ID), string(sessionJSON), ttl)
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*session.Session, error) {
	sessionJSON, err := r.cache.Get(ctx, fmt.Sprintf(SessionKeyPattern, sessionID))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, domain.NewNotFoundError(sessionEntity, sessionID)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.cache.Delete(ctx, fmt.Sprintf(SessionKeyPattern, sessionID))
}
