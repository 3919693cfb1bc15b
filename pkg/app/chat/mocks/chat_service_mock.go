package mocks

import (
	"context"

	"github.com/NeuralTrust/FraudShield/pkg/app/chat"
	"github.com/NeuralTrust/FraudShield/pkg/domain/session"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Start(ctx context.Context) (*session.Session, error) {
	args := m.Called(ctx)
	sess, _ := args.Get(0).(*session.Session)
	return sess, args.Error(1)
}

func (m *Service) History(ctx context.Context, sessionID string) (*session.Session, error) {
	args := m.Called(ctx, sessionID)
	sess, _ := args.Get(0).(*session.Session)
	return sess, args.Error(1)
}

func (m *Service) Send(ctx context.Context, sessionID, content string) (chat.Reply, error) {
	args := m.Called(ctx, sessionID, content)
	reply, _ := args.Get(0).(chat.Reply)
	return reply, args.Error(1)
}
