// Package api содержит входящие порты сервиса заметок.
package api

import (
	"context"

	"notesapp/internal/notes/domain/entities"
)

// NoteUseCase определяет основной порт для операций с заметками.
type NoteUseCase interface {
	ListNotes(ctx context.Context) ([]*entities.Note, error)
	GetNote(ctx context.Context, id int64) (*entities.Note, error)
	CreateNote(ctx context.Context, title, content string) (*entities.Note, error)
	UpdateNote(ctx context.Context, id int64, title, content string) (*entities.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}
