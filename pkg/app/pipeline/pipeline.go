package pipeline

import (
	"context"
	"errors"
	"net/http"

	"github.com/NeuralTrust/FraudShield/pkg/app/prompt"
	"github.com/NeuralTrust/FraudShield/pkg/common"
	"github.com/NeuralTrust/FraudShield/pkg/infra/auth/iam"
	"github.com/NeuralTrust/FraudShield/pkg/infra/redact"
	"github.com/NeuralTrust/FraudShield/pkg/infra/watsonx"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Pipeline --dir=. --output=./mocks --filename=pipeline_mock.go --case=underscore
type Pipeline interface {
	QueryModel(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	APIKey              string
	ProjectID           string
	ModelID             string
	SystemPrompt        string
	ModerationThreshold float64
}

// tokenInvalidator is implemented by exchangers that cache tokens.
type tokenInvalidator interface {
	Invalidate(apiKey string)
}

type pipeline struct {
	logger    *logrus.Logger
	exchanger iam.Exchanger
	client    watsonx.Client
	redactor  *redact.Redactor
	cfg       Config
}

func NewPipeline(
	logger *logrus.Logger,
	exchanger iam.Exchanger,
	client watsonx.Client,
	redactor *redact.Redactor,
	cfg Config,
) Pipeline {
	if redactor == nil {
		redactor = redact.New()
	}
	return &pipeline{
		logger:    logger,
		exchanger: exchanger,
		client:    client,
		redactor:  redactor,
		cfg:       cfg,
	}
}

// QueryModel acquires a fresh token, sends prompt wrapped in the role-tagged
// template and returns the generated text. Every failure is a *QueryError.
func (p *pipeline) QueryModel(ctx context.Context, text string) (string, error) {
	cred, err := p.exchanger.AcquireToken(ctx, p.cfg.APIKey)
	if err != nil {
		p.logger.WithError(err).Warn("could not acquire iam token")
		return "", &QueryError{Kind: KindUnauthenticated, Err: err}
	}

	req := watsonx.NewGenerationRequest(
		prompt.RoleTagged(p.cfg.SystemPrompt, text),
		p.cfg.ModelID,
		p.cfg.ProjectID,
		p.cfg.ModerationThreshold,
	)

	if p.logger.IsLevelEnabled(logrus.DebugLevel) {
		p.logger.WithFields(logrus.Fields{
			"model_id":   req.ModelID,
			"prompt":     p.redactor.Excerpt(text, redact.DefaultExcerptLength),
			"request_id": common.RequestID(ctx),
		}).Debug("querying model")
	}

	result, err := p.client.Generate(ctx, cred.AccessToken, req)
	if err != nil {
		var apiErr *watsonx.APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusUnauthorized {
				if inv, ok := p.exchanger.(tokenInvalidator); ok {
					inv.Invalidate(p.cfg.APIKey)
				}
			}
			return "", &QueryError{
				Kind:       KindAPIError,
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Body,
				Err:        err,
			}
		}
		return "", &QueryError{Kind: KindTransportError, Err: err}
	}

	p.logger.WithFields(logrus.Fields{
		"model_id":              req.ModelID,
		"stop_reason":           result.StopReason,
		"generated_token_count": result.GeneratedTokenCount,
	}).Debug("model answered")

	return result.Text, nil
}
