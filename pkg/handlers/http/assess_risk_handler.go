package http

import (
	"github.com/NeuralTrust/FraudShield/pkg/app/analysis"
	"github.com/NeuralTrust/FraudShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type assessRiskHandler struct {
	logger  *logrus.Logger
	service analysis.Service
}

func NewAssessRiskHandler(logger *logrus.Logger, service analysis.Service) Handler {
	return &assessRiskHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Assess a customer profile
// @Description Scores the overall risk of a customer from business type, monthly volume and country risk.
// @Tags Scoring
// @Accept json
// @Produce json
// @Param request body request.AssessRiskRequest true "Customer profile"
// @Success 200 {object} analysis.Result "Risk score"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/risk-assessments [post]
func (h *assessRiskHandler) Handle(c *fiber.Ctx) error {
	var req request.AssessRiskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to bind risk assessment request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.AssessCustomer(c.UserContext(), req.Profile())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
