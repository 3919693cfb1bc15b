package http

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/app/chat"
	"github.com/NeuralTrust/FraudShield/pkg/app/chat/mocks"
	"github.com/NeuralTrust/FraudShield/pkg/domain/session"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func chatApp(svc chat.Service) *fiber.App {
	logger := logrus.New()
	app := newFiber()
	app.Post("/chat/sessions", NewCreateChatSessionHandler(logger, svc).Handle)
	app.Get("/chat/sessions/:session_id", NewGetChatSessionHandler(logger, svc).Handle)
	app.Post("/chat/sessions/:session_id/messages", NewSendChatMessageHandler(logger, svc).Handle)
	return app
}

func TestCreateChatSession(t *testing.T) {
	svc := new(mocks.Service)
	sess := session.NewSession(time.Hour)
	svc.On("Start", mock.Anything).Return(sess, nil)

	status, body := postJSON(t, chatApp(svc), "/chat/sessions", map[string]string{})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, sess.ID, body["session_id"])
}

func TestCreateChatSession_StoreFailure(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Start", mock.Anything).Return(nil, errors.New("redis down"))

	status, body := postJSON(t, chatApp(svc), "/chat/sessions", map[string]string{})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "failed to create chat session", body["error"])
}

func TestGetChatSession(t *testing.T) {
	svc := new(mocks.Service)
	sess := session.NewSession(time.Hour)
	sess.Append(session.RoleUser, "hello", 0, time.Hour)
	svc.On("History", mock.Anything, sess.ID).Return(sess, nil)

	resp, err := chatApp(svc).Test(httptest.NewRequest(fiber.MethodGet, "/chat/sessions/"+sess.ID, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetChatSession_NotFound(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("History", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: %s", chat.ErrSessionNotFound, "missing"))

	resp, err := chatApp(svc).Test(httptest.NewRequest(fiber.MethodGet, "/chat/sessions/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSendChatMessage(t *testing.T) {
	svc := new(mocks.Service)
	reply := chat.Reply{
		SessionID: "s1",
		Message:   session.Message{Role: session.RoleAssistant, Content: "Chargebacks are disputes.", CreatedAt: time.Now()},
	}
	svc.On("Send", mock.Anything, "s1", "what is a chargeback?").Return(reply, nil)

	status, body := postJSON(t, chatApp(svc), "/chat/sessions/s1/messages", map[string]string{
		"content": "what is a chargeback?",
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "s1", body["session_id"])
	assert.Equal(t, false, body["fallback"])
	message, ok := body["message"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Chargebacks are disputes.", message["content"])
}

func TestSendChatMessage_FallbackReply(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Send", mock.Anything, "s1", "hi").Return(chat.Reply{
		SessionID: "s1",
		Message:   session.Message{Role: session.RoleAssistant, Content: chat.FallbackReply},
		Fallback:  true,
	}, nil)

	status, body := postJSON(t, chatApp(svc), "/chat/sessions/s1/messages", map[string]string{"content": "hi"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["fallback"])
}

func TestSendChatMessage_EmptyContent(t *testing.T) {
	svc := new(mocks.Service)

	status, body := postJSON(t, chatApp(svc), "/chat/sessions/s1/messages", map[string]string{"content": ""})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "content is required", body["error"])
	svc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendChatMessage_UnknownSession(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("Send", mock.Anything, "nope", "hi").
		Return(chat.Reply{}, fmt.Errorf("%w: %s", chat.ErrSessionNotFound, "nope"))

	status, _ := postJSON(t, chatApp(svc), "/chat/sessions/nope/messages", map[string]string{"content": "hi"})

	assert.Equal(t, fiber.StatusNotFound, status)
}
