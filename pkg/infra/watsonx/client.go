package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/infra/httpx"
	"github.com/NeuralTrust/FraudShield/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const DefaultTimeout = 30 * time.Second

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore
type Client interface {
	Generate(ctx context.Context, token string, req GenerationRequest) (Result, error)
}

type client struct {
	http       httpx.Client
	url        string
	breaker    httpx.CircuitBreaker
	logger     *logrus.Logger
	parserPool fastjson.ParserPool
}

func NewClient(logger *logrus.Logger, opts ...Option) Client {
	c := &client{
		http:   &http.Client{Timeout: DefaultTimeout},
		url:    DefaultURL,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate submits req with token as bearer credential. A non-200 answer is
// returned as *APIError; every other failure wraps the underlying cause.
func (c *client) Generate(ctx context.Context, token string, req GenerationRequest) (Result, error) {
	start := time.Now()
	result, err := c.guarded(ctx, token, req)
	prometheus.GenerationLatency.Observe(float64(time.Since(start).Milliseconds()))

	switch {
	case err == nil:
		prometheus.GenerationRequests.WithLabelValues(prometheus.StatusSuccess).Inc()
	case httpx.IsCircuitOpen(err):
		prometheus.GenerationRequests.WithLabelValues(prometheus.StatusRejected).Inc()
	default:
		prometheus.GenerationRequests.WithLabelValues(prometheus.StatusFailure).Inc()
	}
	return result, err
}

func (c *client) guarded(ctx context.Context, token string, req GenerationRequest) (Result, error) {
	if c.breaker == nil {
		return c.generate(ctx, token, req)
	}

	var (
		result Result
		genErr error
	)
	err := c.breaker.Execute(func() error {
		result, genErr = c.generate(ctx, token, req)
		if countsAgainstBreaker(genErr) {
			return genErr
		}
		return nil
	})
	if genErr == nil && err != nil {
		return Result{}, err
	}
	return result, genErr
}

func (c *client) generate(ctx context.Context, token string, genReq GenerationRequest) (Result, error) {
	payload, err := json.Marshal(genReq)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.WithError(err).Error("failed to call generation endpoint")
		}
		return Result{}, fmt.Errorf("failed to call generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read generation response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"model_id":    genReq.ModelID,
		}).Warn("generation endpoint returned non-200 status")
		return Result{}, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return c.parse(body)
}

func (c *client) parse(body []byte) (Result, error) {
	parser := c.parserPool.Get()
	defer c.parserPool.Put(parser)

	v, err := parser.ParseBytes(body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if v.Type() != fastjson.TypeObject {
		return Result{}, fmt.Errorf("%w: expected object, got %s", ErrMalformedResponse, v.Type())
	}

	results := v.GetArray("results")
	if len(results) == 0 {
		return Result{}, nil
	}

	first := results[0]
	var generated []byte
	if text := first.Get("generated_text"); text != nil {
		generated, err = text.StringBytes()
		if err != nil {
			return Result{}, fmt.Errorf("%w: generated_text: %v", ErrMalformedResponse, err)
		}
	}

	return Result{
		Text:                string(generated),
		StopReason:          string(first.GetStringBytes("stop_reason")),
		GeneratedTokenCount: first.GetInt("generated_token_count"),
		InputTokenCount:     first.GetInt("input_token_count"),
	}, nil
}

func countsAgainstBreaker(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, ErrMalformedResponse) && !errors.Is(err, context.Canceled)
}
