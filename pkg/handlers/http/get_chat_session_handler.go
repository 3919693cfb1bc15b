package http

import (
	"errors"

	"github.com/NeuralTrust/FraudShield/pkg/app/chat"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getChatSessionHandler struct {
	logger  *logrus.Logger
	service chat.Service
}

func NewGetChatSessionHandler(logger *logrus.Logger, service chat.Service) Handler {
	return &getChatSessionHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Get a chat transcript
// @Tags Chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} session.Session "Transcript"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/v1/chat/sessions/{session_id} [get]
func (h *getChatSessionHandler) Handle(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	sess, err := h.service.History(c.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "chat session not found"})
		}
		h.logger.WithError(err).WithField("session_id", sessionID).Error("failed to load chat session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load chat session"})
	}
	return c.Status(fiber.StatusOK).JSON(sess)
}
