// Package dto содержит структуры запросов и ответов HTTP API заметок.
package dto

import (
	"errors"
	"strings"

	"notesapp/internal/notes/domain/entities"
)

// ErrTitleRequired возвращается, если заголовок пуст.
var ErrTitleRequired = errors.New("title is required")

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate проверяет обязательные поля.
func (r *CreateNoteRequest) Validate() error {
	return validateTitle(r.Title)
}

// UpdateNoteRequest содержит данные для замены заметки. PUT заменяет заметку
// целиком: отсутствующее поле content сохраняется как пустая строка.
type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate проверяет обязательные поля.
func (r *UpdateNoteRequest) Validate() error {
	return validateTitle(r.Title)
}

// Note представляет заметку в ответе.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FromEntity преобразует доменную заметку в DTO.
func FromEntity(note *entities.Note) Note {
	return Note{
		ID:      note.ID,
		Title:   note.Title,
		Content: note.Content,
	}
}

// FromEntities преобразует список заметок; пустой список кодируется как [].
func FromEntities(notes []*entities.Note) []Note {
	result := make([]Note, 0, len(notes))
	for _, note := range notes {
		result = append(result, FromEntity(note))
	}
	return result
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	return nil
}
