package analysis

import (
	"context"
	"errors"

	"github.com/NeuralTrust/FraudShield/pkg/app/pipeline"
	"github.com/NeuralTrust/FraudShield/pkg/app/prompt"
	"github.com/NeuralTrust/FraudShield/pkg/app/scoring"
	"github.com/NeuralTrust/FraudShield/pkg/common"
	"github.com/NeuralTrust/FraudShield/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	MsgExtractionWarning = "Failed to extract a valid risk score from the response."
	MsgUnauthenticated   = "Could not authenticate with the model provider."
	MsgAPIError          = "The model provider rejected the request."
	MsgTransportError    = "Error querying the model provider."
)

// Result is what a caller sees for one scored request. Error is set when the
// model could not be queried, Warning when it answered without a usable score;
// in both cases Score holds the 0.5 fallback.
type Result struct {
	Score      scoring.Score `json:"score"`
	Percentage float64       `json:"percentage"`
	Level      scoring.Level `json:"level"`
	Response   string        `json:"response"`
	Warning    string        `json:"warning,omitempty"`
	Error      string        `json:"error,omitempty"`
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore
type Service interface {
	AnalyzeTransaction(ctx context.Context, text string) Result
	AssessCustomer(ctx context.Context, profile prompt.CustomerProfile) (Result, error)
}

type service struct {
	logger   *logrus.Logger
	pipeline pipeline.Pipeline
}

func NewService(logger *logrus.Logger, p pipeline.Pipeline) Service {
	return &service{
		logger:   logger,
		pipeline: p,
	}
}

// AnalyzeTransaction never fails: empty input and pipeline errors yield the
// fallback result with Error set.
func (s *service) AnalyzeTransaction(ctx context.Context, text string) Result {
	input, err := prompt.Transaction(text)
	if err != nil {
		return fallback(err.Error())
	}
	return s.score(ctx, "transaction", input)
}

// AssessCustomer only returns an error for an invalid profile.
func (s *service) AssessCustomer(ctx context.Context, profile prompt.CustomerProfile) (Result, error) {
	input, err := prompt.Customer(profile)
	if err != nil {
		return Result{}, err
	}
	return s.score(ctx, "customer", input), nil
}

func (s *service) score(ctx context.Context, kind, input string) Result {
	response, err := s.pipeline.QueryModel(ctx, input)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"kind":       kind,
				"request_id": common.RequestID(ctx),
			}).Error("model query failed")
		}
		return fallback(userMessage(err))
	}

	score, err := scoring.ExtractScore(response)
	result := newResult(score, response)
	if err != nil {
		prometheus.ScoreExtractions.WithLabelValues(prometheus.ExtractionFallback).Inc()
		s.logger.WithFields(logrus.Fields{
			"kind":       kind,
			"request_id": common.RequestID(ctx),
		}).Warn("model response holds no decimal score")
		result.Warning = MsgExtractionWarning
	} else {
		prometheus.ScoreExtractions.WithLabelValues(prometheus.ExtractionParsed).Inc()
	}
	prometheus.RiskLevels.WithLabelValues(string(result.Level)).Inc()

	s.logger.WithFields(logrus.Fields{
		"kind":       kind,
		"score":      float64(result.Score),
		"level":      result.Level,
		"request_id": common.RequestID(ctx),
	}).Info("risk scored")

	return result
}

func newResult(score scoring.Score, response string) Result {
	return Result{
		Score:      score,
		Percentage: score.Percentage(),
		Level:      scoring.Classify(score),
		Response:   response,
	}
}

func fallback(message string) Result {
	result := newResult(scoring.DefaultScore, "")
	result.Error = message
	return result
}

func userMessage(err error) string {
	switch {
	case pipeline.IsUnauthenticated(err):
		return MsgUnauthenticated
	case pipeline.IsAPIError(err):
		return MsgAPIError
	default:
		return MsgTransportError
	}
}
