package mocks

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/FraudShield/pkg/infra/auth/iam"
	"github.com/stretchr/testify/mock"
)

type Exchanger struct {
	mock.Mock
}

func (m *Exchanger) AcquireToken(ctx context.Context, apiKey string) (iam.Credential, error) {
	args := m.Called(ctx, apiKey)
	cred, ok := args.Get(0).(iam.Credential)
	if !ok && args.Get(0) != nil {
		return iam.Credential{}, fmt.Errorf("expected iam.Credential, got %T", args.Get(0))
	}
	return cred, args.Error(1)
}
