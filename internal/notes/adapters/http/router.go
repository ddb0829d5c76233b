// Package http содержит компоненты для HTTP сервера заметок.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"notesapp/internal/notes/adapters/http/middleware"
	"notesapp/internal/notes/adapters/http/notes"
	"notesapp/internal/notes/config"
	"notesapp/internal/notes/ports/api"
	"notesapp/pkg/logger"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, log *logger.Logger, noteUseCase api.NoteUseCase, rateLimit config.RateLimitConfig) {
	notesHandler := notes.NewHandler(noteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware(log))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New())
	if rateLimit.Enabled {
		app.Use(middleware.NewRateLimitMiddleware(rateLimit.RPS, rateLimit.Burst))
	}

	notesRoutes := app.Group("/api/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/:"+notes.ParamNoteID, notesHandler.GetNote)
	notesRoutes.Put("/:"+notes.ParamNoteID, notesHandler.UpdateNote)
	notesRoutes.Delete("/:"+notes.ParamNoteID, notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
