package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"notesapp/pkg/logger"
)

const (
	defaultRPS   = 100
	defaultBurst = 10
)

// NewRateLimitMiddleware ограничивает количество запросов.
// rps - запросов в секунду, burst - допустимый кратковременный всплеск.
func NewRateLimitMiddleware(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(ctx fiber.Ctx) error {
		if !limiter.Allow() {
			requestCtx := RequestContext(ctx)
			logger.Log(requestCtx).Warn(requestCtx, "Rate limit exceeded",
				zap.String("path", ctx.Path()),
				zap.String("ip", ctx.IP()))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}
		return ctx.Next()
	}
}
