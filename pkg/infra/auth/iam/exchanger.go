package iam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/infra/httpx"
	"github.com/NeuralTrust/FraudShield/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultURL     = "https://iam.cloud.ibm.com/identity/token"
	DefaultTimeout = 30 * time.Second

	apiKeyGrantType = "urn:ibm:params:oauth:grant-type:apikey"
)

// Credential is a short-lived bearer token. ExpiresAt is zero when the IAM
// response did not say when the token expires.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// ValidAt reports whether the token can still be used at now, keeping skew
// in reserve. Tokens without an expiry are never considered valid.
func (c Credential) ValidAt(now time.Time, skew time.Duration) bool {
	if c.AccessToken == "" || c.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(skew).Before(c.ExpiresAt)
}

//go:generate mockery --name=Exchanger --dir=. --output=./mocks --filename=exchanger_mock.go --case=underscore
type Exchanger interface {
	AcquireToken(ctx context.Context, apiKey string) (Credential, error)
}

type exchanger struct {
	client  httpx.Client
	url     string
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	now     func() time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func NewExchanger(logger *logrus.Logger, opts ...Option) Exchanger {
	e := &exchanger{
		client: &http.Client{Timeout: DefaultTimeout},
		url:    DefaultURL,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *exchanger) AcquireToken(ctx context.Context, apiKey string) (Credential, error) {
	if strings.TrimSpace(apiKey) == "" {
		prometheus.IAMTokenRequests.WithLabelValues(prometheus.StatusFailure).Inc()
		return Credential{}, &AuthError{Err: ErrEmptyAPIKey}
	}

	if e.breaker == nil {
		cred, err := e.exchange(ctx, apiKey)
		e.record(err)
		return cred, err
	}

	var (
		cred    Credential
		authErr error
	)
	err := e.breaker.Execute(func() error {
		cred, authErr = e.exchange(ctx, apiKey)
		if countsAgainstBreaker(authErr) {
			return authErr
		}
		return nil
	})
	if authErr == nil && err != nil {
		// The breaker refused the call before exchange ran.
		prometheus.IAMTokenRequests.WithLabelValues(prometheus.StatusRejected).Inc()
		return Credential{}, &AuthError{Err: err}
	}
	e.record(authErr)
	return cred, authErr
}

func (e *exchanger) exchange(ctx context.Context, apiKey string) (Credential, error) {
	form := url.Values{}
	form.Set("grant_type", apiKeyGrantType)
	form.Set("apikey", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, strings.NewReader(form.Encode()))
	if err != nil {
		return Credential{}, &AuthError{Err: fmt.Errorf("failed to create token request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			e.logger.WithError(err).Error("failed to call iam token endpoint")
		}
		return Credential{}, &AuthError{Err: fmt.Errorf("failed to call iam token endpoint: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credential{}, &AuthError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read token response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		e.logger.WithField("status_code", resp.StatusCode).Warn("iam token endpoint returned non-200 status")
		return Credential{}, &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return Credential{}, &AuthError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode token response: %w", err),
		}
	}
	if tr.AccessToken == "" {
		return Credential{}, &AuthError{
			StatusCode: resp.StatusCode,
			Err:        errors.New("empty access_token in response"),
		}
	}

	cred := Credential{AccessToken: tr.AccessToken}
	if tr.ExpiresIn > 0 {
		cred.ExpiresAt = e.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return cred, nil
}

func (e *exchanger) record(err error) {
	if err != nil {
		prometheus.IAMTokenRequests.WithLabelValues(prometheus.StatusFailure).Inc()
		return
	}
	prometheus.IAMTokenRequests.WithLabelValues(prometheus.StatusSuccess).Inc()
}

func countsAgainstBreaker(err error) bool {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return false
	}
	return authErr.StatusCode == 0 || authErr.StatusCode >= http.StatusInternalServerError
}
