package router

import (
	"github.com/NeuralTrust/FraudShield/pkg/common"
	handlers "github.com/NeuralTrust/FraudShield/pkg/handlers/http"
	"github.com/NeuralTrust/FraudShield/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil {
		return ErrInvalidHandlerTransport
	}
	h := r.handlerTransport

	v1 := router.Group(common.APIPrefix)
	{
		if r.middlewareTransport != nil {
			if mws := r.middlewareTransport.GetMiddlewares(); len(mws) > 0 {
				v1.Use(mws...)
			}
		}

		v1.Get("/version", h.GetVersionHandler.Handle)

		v1.Post("/transactions/analyze", h.AnalyzeTransactionHandler.Handle)
		v1.Post("/risk-assessments", h.AssessRiskHandler.Handle)

		sessions := v1.Group("/chat/sessions")
		{
			sessions.Post("", h.CreateChatSessionHandler.Handle)
			sessions.Get("/:session_id", h.GetChatSessionHandler.Handle)
			sessions.Post("/:session_id/messages", h.SendChatMessageHandler.Handle)
		}
	}
	return nil
}
