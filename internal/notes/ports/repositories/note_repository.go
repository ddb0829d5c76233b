// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"notesapp/internal/notes/domain/entities"
)

// ErrNoteNotFound возвращается, когда заметки с указанным ID нет в хранилище.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository определяет интерфейс хранилища заметок.
// Любая ошибка, кроме ErrNoteNotFound, означает сбой хранилища.
type NoteRepository interface {
	// List возвращает все заметки в порядке возрастания ID.
	List(ctx context.Context) ([]*entities.Note, error)
	GetByID(ctx context.Context, id int64) (*entities.Note, error)
	// Create назначает новый ID и возвращает сохраненную заметку.
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Delete(ctx context.Context, id int64) error
}
