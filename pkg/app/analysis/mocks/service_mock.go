package mocks

import (
	"context"

	"github.com/NeuralTrust/FraudShield/pkg/app/analysis"
	"github.com/NeuralTrust/FraudShield/pkg/app/prompt"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) AnalyzeTransaction(ctx context.Context, text string) analysis.Result {
	args := m.Called(ctx, text)
	result, _ := args.Get(0).(analysis.Result)
	return result
}

func (m *Service) AssessCustomer(ctx context.Context, profile prompt.CustomerProfile) (analysis.Result, error) {
	args := m.Called(ctx, profile)
	result, _ := args.Get(0).(analysis.Result)
	return result, args.Error(1)
}
