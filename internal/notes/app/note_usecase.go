// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"notesapp/internal/notes/domain/entities"
	"notesapp/internal/notes/ports/repositories"
	"notesapp/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	// ErrInvalidParams - некорректный ввод (BadRequest).
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrNotFound - заметки с таким ID нет (NotFound).
	ErrNotFound = errors.New("note not found")
	// ErrStorage - сбой хранилища (ServiceError).
	ErrStorage = errors.New("note storage failure")
)

// Константы для сообщений об ошибках валидации.
const (
	ErrMsgEmptyTitle = "title is required"
	ErrMsgInvalidID  = "id must be a positive integer"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
// Не хранит состояния между вызовами.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// ListNotes возвращает все заметки.
func (uc *NoteUseCase) ListNotes(ctx context.Context) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, storageError(ctx, "list", err)
	}
	return notes, nil
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, id int64) (*entities.Note, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(ctx, "get", err)
	}
	return note, nil
}

// CreateNote создает заметку. Заголовок обязателен, содержимое может быть пустым.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title, content string) (*entities.Note, error) {
	note := entities.NewNote(title, content)
	if !note.HasTitle() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParams, ErrMsgEmptyTitle)
	}

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, storageError(ctx, "create", err)
	}

	logger.Log(ctx).Info(ctx, "note created", zap.Int64("noteID", created.ID))
	return created, nil
}

// UpdateNote заменяет заголовок и содержимое заметки с указанным ID.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, id int64, title, content string) (*entities.Note, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	note := entities.NewNote(title, content)
	if !note.HasTitle() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParams, ErrMsgEmptyTitle)
	}
	note.ID = id

	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, translate(ctx, "update", err)
	}

	logger.Log(ctx).Info(ctx, "note updated", zap.Int64("noteID", id))
	return updated, nil
}

// DeleteNote удаляет заметку. Удаление отсутствующей заметки - ошибка ErrNotFound.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, id); err != nil {
		return translate(ctx, "delete", err)
	}

	logger.Log(ctx).Info(ctx, "note deleted", zap.Int64("noteID", id))
	return nil
}

// ParseID разбирает идентификатор заметки из строки пути.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidParams, ErrMsgInvalidID)
	}
	if err := validateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidParams, ErrMsgInvalidID)
	}
	return nil
}

func translate(ctx context.Context, op string, err error) error {
	if errors.Is(err, repositories.ErrNoteNotFound) {
		return ErrNotFound
	}
	return storageError(ctx, op, err)
}

func storageError(ctx context.Context, op string, err error) error {
	logger.Log(ctx).Error(ctx, "note storage operation failed", zap.String("operation", op), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
