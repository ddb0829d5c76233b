// Package memory содержит in-memory реализацию хранилища заметок.
package memory

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"notesapp/internal/notes/domain/entities"
	"notesapp/internal/notes/ports/repositories"
	"notesapp/pkg/logger"
)

// NoteRepository хранит заметки в map под RWMutex.
// ID выдаются монотонно и не переиспользуются после удаления.
type NoteRepository struct {
	mu     sync.RWMutex
	lastID int64
	notes  map[int64]entities.Note
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает пустое in-memory хранилище.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		notes: make(map[int64]entities.Note),
	}
}

// List возвращает копии всех заметок в порядке возрастания ID.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.notes))
	for id := range r.notes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	notes := make([]*entities.Note, 0, len(ids))
	for _, id := range ids {
		note := r.notes[id]
		notes = append(notes, &note)
	}

	logger.Log(ctx).Debug(ctx, "notes listed", zap.String("method", "memory.NoteRepository.List"), zap.Int("count", len(notes)))
	return notes, nil
}

// GetByID возвращает копию заметки по ID.
func (r *NoteRepository) GetByID(_ context.Context, id int64) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, repositories.ErrNoteNotFound
	}
	return &note, nil
}

// Create назначает следующий ID и сохраняет заметку.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	stored := entities.Note{ID: r.lastID, Title: note.Title, Content: note.Content}
	r.notes[stored.ID] = stored

	logger.Log(ctx).Debug(ctx, "note created", zap.String("method", "memory.NoteRepository.Create"), zap.Int64("noteID", stored.ID))
	return &stored, nil
}

// Update заменяет заголовок и содержимое заметки.
func (r *NoteRepository) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; !ok {
		return nil, repositories.ErrNoteNotFound
	}

	stored := entities.Note{ID: note.ID, Title: note.Title, Content: note.Content}
	r.notes[note.ID] = stored

	return &stored, nil
}

// Delete удаляет заметку по ID.
func (r *NoteRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return repositories.ErrNoteNotFound
	}

	delete(r.notes, id)
	return nil
}
