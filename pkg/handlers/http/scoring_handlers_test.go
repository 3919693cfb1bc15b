package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/FraudShield/pkg/app/analysis"
	"github.com/NeuralTrust/FraudShield/pkg/app/analysis/mocks"
	"github.com/NeuralTrust/FraudShield/pkg/app/prompt"
	"github.com/NeuralTrust/FraudShield/pkg/app/scoring"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFiber() *fiber.App { return fiber.New() }

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestAnalyzeTransaction_ReturnsResult(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("AnalyzeTransaction", mock.Anything, "wire $9,000 to new payee").Return(analysis.Result{
		Score:      0.82,
		Percentage: 82,
		Level:      scoring.LevelHigh,
		Response:   "0.82",
	})

	app := newFiber()
	app.Post("/api/v1/transactions/analyze", NewAnalyzeTransactionHandler(logrus.New(), svc).Handle)

	status, body := postJSON(t, app, "/api/v1/transactions/analyze", map[string]string{
		"transaction": "wire $9,000 to new payee",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.InDelta(t, 0.82, body["score"], 1e-9)
	assert.Equal(t, "high", body["level"])
	assert.NotContains(t, body, "error")
	svc.AssertExpectations(t)
}

func TestAnalyzeTransaction_PipelineFailureIsStillOK(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("AnalyzeTransaction", mock.Anything, "coffee").Return(analysis.Result{
		Score:      scoring.DefaultScore,
		Percentage: 50,
		Level:      scoring.LevelMedium,
		Error:      analysis.MsgTransportError,
	})

	app := newFiber()
	app.Post("/analyze", NewAnalyzeTransactionHandler(logrus.New(), svc).Handle)

	status, body := postJSON(t, app, "/analyze", map[string]string{"transaction": "coffee"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, analysis.MsgTransportError, body["error"])
	assert.InDelta(t, 0.5, body["score"], 1e-9)
}

func TestAnalyzeTransaction_EmptyText(t *testing.T) {
	svc := new(mocks.Service)
	app := newFiber()
	app.Post("/analyze", NewAnalyzeTransactionHandler(logrus.New(), svc).Handle)

	status, body := postJSON(t, app, "/analyze", map[string]string{"transaction": "   "})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "transaction is required", body["error"])
	svc.AssertNotCalled(t, "AnalyzeTransaction", mock.Anything, mock.Anything)
}

func TestAnalyzeTransaction_InvalidJSON(t *testing.T) {
	svc := new(mocks.Service)
	app := newFiber()
	app.Post("/analyze", NewAnalyzeTransactionHandler(logrus.New(), svc).Handle)

	status, body := postJSON(t, app, "/analyze", `{"transaction":`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, ErrInvalidJsonPayload, body["error"])
}

func TestAssessRisk_ReturnsResult(t *testing.T) {
	svc := new(mocks.Service)
	profile := prompt.CustomerProfile{
		BusinessType:  prompt.BusinessSmallBusiness,
		MonthlyVolume: 25000,
		CountryRisk:   prompt.CountryRiskMedium,
	}
	svc.On("AssessCustomer", mock.Anything, profile).Return(analysis.Result{
		Score:      0.2,
		Percentage: 20,
		Level:      scoring.LevelLow,
		Response:   "0.2",
	}, nil)

	app := newFiber()
	app.Post("/api/v1/risk-assessments", NewAssessRiskHandler(logrus.New(), svc).Handle)

	status, body := postJSON(t, app, "/api/v1/risk-assessments", map[string]interface{}{
		"business_type":  "Small Business",
		"monthly_volume": 25000,
		"country_risk":   "Medium",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "low", body["level"])
	svc.AssertExpectations(t)
}

func TestAssessRisk_InvalidProfile(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{
			name: "missing volume",
			body: map[string]interface{}{"business_type": "Individual", "country_risk": "Low"},
			want: "monthly_volume is required",
		},
		{
			name: "unknown business type",
			body: map[string]interface{}{"business_type": "Trust", "monthly_volume": 10, "country_risk": "Low"},
			want: prompt.ErrInvalidBusinessType.Error(),
		},
		{
			name: "volume above range",
			body: map[string]interface{}{"business_type": "Individual", "monthly_volume": 2000000, "country_risk": "Low"},
			want: prompt.ErrInvalidVolume.Error(),
		},
		{
			name: "unknown country risk",
			body: map[string]interface{}{"business_type": "Corporation", "monthly_volume": 10, "country_risk": "Severe"},
			want: prompt.ErrInvalidCountryRisk.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.Service)
			app := newFiber()
			app.Post("/assess", NewAssessRiskHandler(logrus.New(), svc).Handle)

			status, body := postJSON(t, app, "/assess", tt.body)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, tt.want, body["error"])
			svc.AssertNotCalled(t, "AssessCustomer", mock.Anything, mock.Anything)
		})
	}
}

func TestGetVersion(t *testing.T) {
	app := newFiber()
	app.Get("/version", NewGetVersionHandler(logrus.New()).Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/version", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "FraudShield", body["app_name"])
}
