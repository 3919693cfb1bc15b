package http

import (
	"github.com/NeuralTrust/FraudShield/pkg/app/analysis"
	"github.com/NeuralTrust/FraudShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type analyzeTransactionHandler struct {
	logger  *logrus.Logger
	service analysis.Service
}

func NewAnalyzeTransactionHandler(logger *logrus.Logger, service analysis.Service) Handler {
	return &analyzeTransactionHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Score a transaction
// @Description Asks the model for a fraud risk score of a free-text transaction.
// @Description Model failures still answer 200 with the fallback score and an error message.
// @Tags Scoring
// @Accept json
// @Produce json
// @Param request body request.AnalyzeTransactionRequest true "Transaction"
// @Success 200 {object} analysis.Result "Risk score"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/transactions/analyze [post]
func (h *analyzeTransactionHandler) Handle(c *fiber.Ctx) error {
	var req request.AnalyzeTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to bind transaction request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := h.service.AnalyzeTransaction(c.UserContext(), req.Transaction)
	return c.Status(fiber.StatusOK).JSON(result)
}
