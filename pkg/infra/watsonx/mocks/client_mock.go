package mocks

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/FraudShield/pkg/infra/watsonx"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) Generate(ctx context.Context, token string, req watsonx.GenerationRequest) (watsonx.Result, error) {
	args := m.Called(ctx, token, req)
	result, ok := args.Get(0).(watsonx.Result)
	if !ok && args.Get(0) != nil {
		return watsonx.Result{}, fmt.Errorf("expected watsonx.Result, got %T", args.Get(0))
	}
	return result, args.Error(1)
}
