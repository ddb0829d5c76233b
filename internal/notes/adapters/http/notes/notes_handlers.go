// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesapp/internal/notes/adapters/http/dto"
	"notesapp/internal/notes/adapters/http/middleware"
	"notesapp/internal/notes/app"
	"notesapp/internal/notes/ports/api"
	"notesapp/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgInternal           = "internal server error"
)

// ParamNoteID - имя параметра пути с идентификатором заметки.
const ParamNoteID = "id"

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// ListNotes возвращает все заметки массивом JSON.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes)

	notes, err := h.notes.ListNotes(requestCtx)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.FromEntities(notes)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote возвращает заметку по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetNote)

	id, err := app.ParseID(ctx.Params(ParamNoteID))
	if err != nil {
		return respondError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	note, err := h.notes.GetNote(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.FromEntity(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if err := req.Validate(); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, err.Error())
	}

	note, err := h.notes.CreateNote(requestCtx, req.Title, req.Content)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.FromEntity(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	id, err := app.ParseID(ctx.Params(ParamNoteID))
	if err != nil {
		return respondError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if err := req.Validate(); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, err.Error())
	}

	note, err := h.notes.UpdateNote(requestCtx, id, req.Title, req.Content)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.FromEntity(note)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteNote)

	id, err := app.ParseID(ctx.Params(ParamNoteID))
	if err != nil {
		return respondError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	if err := h.notes.DeleteNote(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError переводит ошибки бизнес-логики в HTTP-статусы.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidParams):
		return respondError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return respondError(ctx, fiber.StatusNotFound, ErrMsgNoteNotFound)
	default:
		// Детали сбоя хранилища уже залогированы в app и наружу не отдаются.
		return respondError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
}

func respondError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: message}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}
