package http

import (
	"github.com/NeuralTrust/FraudShield/pkg/app/chat"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createChatSessionHandler struct {
	logger  *logrus.Logger
	service chat.Service
}

func NewCreateChatSessionHandler(logger *logrus.Logger, service chat.Service) Handler {
	return &createChatSessionHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Start a chat session
// @Tags Chat
// @Produce json
// @Success 201 {object} map[string]interface{} "Session created"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/chat/sessions [post]
func (h *createChatSessionHandler) Handle(c *fiber.Ctx) error {
	sess, err := h.service.Start(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to create chat session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create chat session"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": sess.ID,
		"expires_at": sess.ExpiresAt,
	})
}
