package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesapp/internal/notes/config"
	"notesapp/pkg/logger"
)

// Константы для логирования.
const (
	LogServerStarting = "starting HTTP server"
	LogServerStopping = "stopping HTTP server"
	ErrServerShutdown = "failed to shutdown HTTP server"
)

// NewApp создает fiber-приложение с настройками из конфигурации.
func NewApp(cfg config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "notes",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.BodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
}

// Listen запускает HTTP сервер в фоне. Ошибка запуска отправляется в errCh.
func Listen(ctx context.Context, app *fiber.App, address string, errCh chan<- error) {
	logger.Log(ctx).Info(ctx, LogServerStarting, zap.String("address", address))

	go func() {
		if err := app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
}

// Shutdown останавливает HTTP сервер, дожидаясь завершения активных запросов.
func Shutdown(ctx context.Context, app *fiber.App) error {
	logger.Log(ctx).Info(ctx, LogServerStopping)
	if err := app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrServerShutdown, err)
	}
	return nil
}

// errorHandler отдает ошибки fiber в общем формате {"error": ...}.
func errorHandler(ctx fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if sendErr := ctx.Status(code).JSON(fiber.Map{"error": message}); sendErr != nil {
		return fmt.Errorf("error sending %d response: %w", code, sendErr)
	}
	return nil
}
