package analysis

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/NeuralTrust/FraudShield/pkg/app/pipeline"
	"github.com/NeuralTrust/FraudShield/pkg/app/pipeline/mocks"
	"github.com/NeuralTrust/FraudShield/pkg/app/prompt"
	"github.com/NeuralTrust/FraudShield/pkg/app/scoring"
	"github.com/NeuralTrust/FraudShield/pkg/infra/auth/iam"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestAnalyzeTransaction_Scored(t *testing.T) {
	p := new(mocks.Pipeline)
	p.On("QueryModel", mock.Anything, mock.MatchedBy(func(input string) bool {
		return strings.HasSuffix(input, "Transaction: $5,000 wire to offshore account")
	})).Return("Risk score: 0.82\n", nil)

	result := NewService(testLogger(), p).AnalyzeTransaction(context.Background(), "$5,000 wire to offshore account")

	assert.InDelta(t, 0.82, float64(result.Score), 1e-9)
	assert.InDelta(t, 82.0, result.Percentage, 1e-9)
	assert.Equal(t, scoring.LevelHigh, result.Level)
	assert.Equal(t, "Risk score: 0.82\n", result.Response)
	assert.Empty(t, result.Warning)
	assert.Empty(t, result.Error)
	p.AssertExpectations(t)
}

func TestAnalyzeTransaction_ExtractionFallback(t *testing.T) {
	p := new(mocks.Pipeline)
	p.On("QueryModel", mock.Anything, mock.Anything).Return("high risk", nil)

	result := NewService(testLogger(), p).AnalyzeTransaction(context.Background(), "coffee")

	assert.Equal(t, scoring.DefaultScore, result.Score)
	assert.Equal(t, scoring.LevelMedium, result.Level)
	assert.Equal(t, MsgExtractionWarning, result.Warning)
	assert.Empty(t, result.Error)
	assert.Equal(t, "high risk", result.Response)
}

func TestAnalyzeTransaction_PipelineFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unauthenticated",
			err:  &pipeline.QueryError{Kind: pipeline.KindUnauthenticated, Err: &iam.AuthError{StatusCode: 401}},
			want: MsgUnauthenticated,
		},
		{
			name: "api error",
			err:  &pipeline.QueryError{Kind: pipeline.KindAPIError, StatusCode: 500},
			want: MsgAPIError,
		},
		{
			name: "transport",
			err:  &pipeline.QueryError{Kind: pipeline.KindTransportError, Err: errors.New("timeout")},
			want: MsgTransportError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(mocks.Pipeline)
			p.On("QueryModel", mock.Anything, mock.Anything).Return("", tt.err)

			result := NewService(testLogger(), p).AnalyzeTransaction(context.Background(), "tx")

			assert.Equal(t, scoring.DefaultScore, result.Score)
			assert.InDelta(t, 50.0, result.Percentage, 1e-9)
			assert.Equal(t, tt.want, result.Error)
			assert.Empty(t, result.Response)
		})
	}
}

func TestAnalyzeTransaction_EmptyInputMakesNoQuery(t *testing.T) {
	p := new(mocks.Pipeline)

	result := NewService(testLogger(), p).AnalyzeTransaction(context.Background(), "   ")

	assert.Equal(t, scoring.DefaultScore, result.Score)
	assert.Equal(t, prompt.ErrEmptyTransaction.Error(), result.Error)
	p.AssertNotCalled(t, "QueryModel", mock.Anything, mock.Anything)
}

func TestAssessCustomer(t *testing.T) {
	p := new(mocks.Pipeline)
	p.On("QueryModel", mock.Anything, mock.MatchedBy(func(input string) bool {
		return strings.Contains(input, "Business Type: Corporation") &&
			strings.Contains(input, "Monthly Transaction Volume: $250000")
	})).Return("0.15", nil)

	result, err := NewService(testLogger(), p).AssessCustomer(context.Background(), prompt.CustomerProfile{
		BusinessType:  prompt.BusinessCorporation,
		MonthlyVolume: 250000,
		CountryRisk:   prompt.CountryRiskLow,
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.15, float64(result.Score), 1e-9)
	assert.Equal(t, scoring.LevelLow, result.Level)
}

func TestAssessCustomer_ClampsScore(t *testing.T) {
	p := new(mocks.Pipeline)
	p.On("QueryModel", mock.Anything, mock.Anything).Return("Score: 1.7", nil)

	result, err := NewService(testLogger(), p).AssessCustomer(context.Background(), prompt.CustomerProfile{
		BusinessType: prompt.BusinessIndividual,
		CountryRisk:  prompt.CountryRiskHigh,
	})

	require.NoError(t, err)
	assert.Equal(t, scoring.Score(1), result.Score)
	assert.InDelta(t, 100.0, result.Percentage, 1e-9)
}

func TestAssessCustomer_InvalidProfile(t *testing.T) {
	p := new(mocks.Pipeline)

	_, err := NewService(testLogger(), p).AssessCustomer(context.Background(), prompt.CustomerProfile{
		BusinessType: "Charity",
		CountryRisk:  prompt.CountryRiskLow,
	})

	assert.ErrorIs(t, err, prompt.ErrInvalidBusinessType)
	p.AssertNotCalled(t, "QueryModel", mock.Anything, mock.Anything)
}

func TestAssessCustomer_PipelineFailureIsNotAnError(t *testing.T) {
	p := new(mocks.Pipeline)
	p.On("QueryModel", mock.Anything, mock.Anything).
		Return("", &pipeline.QueryError{Kind: pipeline.KindTransportError, Err: errors.New("reset")})

	result, err := NewService(testLogger(), p).AssessCustomer(context.Background(), prompt.CustomerProfile{
		BusinessType: prompt.BusinessSmallBusiness,
		CountryRisk:  prompt.CountryRiskMedium,
	})

	require.NoError(t, err)
	assert.Equal(t, MsgTransportError, result.Error)
	assert.Equal(t, scoring.DefaultScore, result.Score)
}
