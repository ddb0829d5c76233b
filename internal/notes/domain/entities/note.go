// Package entities defines the domain entities for the notes service.
package entities

import "strings"

// Note представляет собой заметку.
// ID назначается хранилищем при создании и больше не меняется.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewNote создает заметку без идентификатора. Заголовок сохраняется как есть,
// пробелы учитываются только в HasTitle.
func NewNote(title, content string) *Note {
	return &Note{
		Title:   title,
		Content: content,
	}
}

// HasTitle сообщает, содержит ли заголовок что-то кроме пробелов.
func (n *Note) HasTitle() bool {
	return strings.TrimSpace(n.Title) != ""
}
