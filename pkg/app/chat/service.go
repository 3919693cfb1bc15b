package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/app/pipeline"
	"github.com/NeuralTrust/FraudShield/pkg/common"
	"github.com/NeuralTrust/FraudShield/pkg/domain"
	"github.com/NeuralTrust/FraudShield/pkg/domain/session"
	"github.com/sirupsen/logrus"
)

// FallbackReply is shown when the model could not answer. It is never
// stored in the transcript.
const FallbackReply = "Sorry, I couldn't process your request."

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message content is empty")
)

type Reply struct {
	SessionID string          `json:"session_id"`
	Message   session.Message `json:"message"`
	// Fallback is true when Message is FallbackReply rather than model output.
	Fallback bool `json:"fallback"`
}

type Config struct {
	TTL         time.Duration
	MaxMessages int
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=chat_service_mock.go --case=underscore
type Service interface {
	Start(ctx context.Context) (*session.Session, error)
	History(ctx context.Context, sessionID string) (*session.Session, error)
	Send(ctx context.Context, sessionID, content string) (Reply, error)
}

type service struct {
	logger   *logrus.Logger
	repo     session.Repository
	pipeline pipeline.Pipeline
	cfg      Config
	locks    *sessionLocks
}

func NewService(logger *logrus.Logger, repo session.Repository, p pipeline.Pipeline, cfg Config) Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &service{
		logger:   logger,
		repo:     repo,
		pipeline: p,
		cfg:      cfg,
		locks:    newSessionLocks(),
	}
}

func (s *service) Start(ctx context.Context) (*session.Session, error) {
	sess := session.NewSession(s.cfg.TTL)
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.logger.WithField("session_id", sess.ID).Debug("chat session started")
	return sess, nil
}

func (s *service) History(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}
	return sess, nil
}

// Send records the user message, forwards the raw text to the model and
// records the answer. Messages to one session are handled one at a time.
func (s *service) Send(ctx context.Context, sessionID, content string) (Reply, error) {
	if strings.TrimSpace(content) == "" {
		return Reply{}, ErrEmptyMessage
	}

	// Unknown ids are rejected before they can claim a lock entry.
	if _, err := s.History(ctx, sessionID); err != nil {
		return Reply{}, err
	}

	unlock := s.locks.acquire(sessionID)
	defer unlock()

	sess, err := s.History(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}

	sess.Append(session.RoleUser, content, s.cfg.MaxMessages, s.cfg.TTL)
	if err := s.repo.Save(ctx, sess); err != nil {
		return Reply{}, fmt.Errorf("failed to save session: %w", err)
	}

	answer, err := s.pipeline.QueryModel(ctx, content)
	if err != nil || answer == "" {
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"session_id": sessionID,
				"request_id": common.RequestID(ctx),
			}).Error("chat query failed")
		}
		return Reply{
			SessionID: sessionID,
			Message: session.Message{
				Role:      session.RoleAssistant,
				Content:   FallbackReply,
				CreatedAt: time.Now(),
			},
			Fallback: true,
		}, nil
	}

	msg := sess.Append(session.RoleAssistant, answer, s.cfg.MaxMessages, s.cfg.TTL)
	if err := s.repo.Save(ctx, sess); err != nil {
		return Reply{}, fmt.Errorf("failed to save session: %w", err)
	}

	return Reply{SessionID: sessionID, Message: msg}, nil
}
