package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	PanicRecoverMiddleware Middleware
	RequestIDMiddleware    Middleware
	MetricsMiddleware      Middleware
	AuthMiddleware         Middleware
}

// GetMiddlewares returns the handlers in the order they must wrap the API.
func (t *Transport) GetMiddlewares() []interface{} {
	var out []interface{}
	for _, m := range []Middleware{
		t.PanicRecoverMiddleware,
		t.RequestIDMiddleware,
		t.MetricsMiddleware,
		t.AuthMiddleware,
	} {
		if m != nil {
			out = append(out, m.Middleware())
		}
	}
	return out
}
