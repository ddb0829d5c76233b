// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notesapp/pkg/logger"
)

// Ключи и заголовки, общие для middleware и обработчиков.
const (
	HeaderRequestID = logger.HeaderRequestID
	UserContextKey  = "userContext"
)

// NewRequestIDMiddleware присваивает запросу идентификатор и кладет контекст
// с логгером в Locals. Непригодный входящий идентификатор заменяется новым.
func NewRequestIDMiddleware(base *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx, requestID := logger.NewRequestContext(ctx.Context(), base, ctx.Get(HeaderRequestID))
		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(UserContextKey, requestCtx)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса, подготовленный NewRequestIDMiddleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
