package http

import (
	"errors"

	"github.com/NeuralTrust/FraudShield/pkg/app/chat"
	"github.com/NeuralTrust/FraudShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type sendChatMessageHandler struct {
	logger  *logrus.Logger
	service chat.Service
}

func NewSendChatMessageHandler(logger *logrus.Logger, service chat.Service) Handler {
	return &sendChatMessageHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Send a chat message
// @Description Stores the message, forwards it to the model and returns the assistant reply.
// @Tags Chat
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body request.SendChatMessageRequest true "Message"
// @Success 200 {object} chat.Reply "Assistant reply"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/v1/chat/sessions/{session_id}/messages [post]
func (h *sendChatMessageHandler) Handle(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	var req request.SendChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to bind chat message request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reply, err := h.service.Send(c.UserContext(), sessionID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "chat session not found"})
		case errors.Is(err, chat.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).WithField("session_id", sessionID).Error("failed to send chat message")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send chat message"})
	}
	return c.Status(fiber.StatusOK).JSON(reply)
}
