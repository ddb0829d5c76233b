// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notesapp/internal/notes/domain/entities"
	"notesapp/internal/notes/ports/repositories"
	"notesapp/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrListingNotes  = "failed to list notes"
	ErrScanningNote  = "failed to scan note"
	ErrIteratingRows = "error iterating rows"
	ErrGettingNote   = "failed to get note"
	ErrCreatingNote  = "failed to create note"
	ErrUpdatingNote  = "failed to update note"
	ErrDeletingNote  = "failed to delete note"
)

const (
	queryList   = `SELECT id, title, content FROM notes ORDER BY id`
	queryGet    = `SELECT id, title, content FROM notes WHERE id = $1`
	queryCreate = `INSERT INTO notes (title, content) VALUES ($1, $2) RETURNING id, title, content`
	queryUpdate = `UPDATE notes SET title = $1, content = $2, updated_at = now() WHERE id = $3 RETURNING id, title, content`
	queryDelete = `DELETE FROM notes WHERE id = $1`
)

// DBTX - подмножество методов pgxpool.Pool, используемое репозиторием.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db DBTX
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

// List возвращает все заметки в порядке возрастания ID.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes")

	rows, err := r.db.Query(ctx, queryList)
	if err != nil {
		log.Error(ctx, ErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content); err != nil {
			log.Error(ctx, ErrScanningNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanningNote, err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIteratingRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIteratingRows, err)
	}

	log.Debug(ctx, "notes listed", zap.Int("count", len(notes)))
	return notes, nil
}

// GetByID возвращает заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"), zap.Int64("noteID", id))
	log.Debug(ctx, "getting note")

	note, err := scanNote(r.db.QueryRow(ctx, queryGet, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found")
			return nil, repositories.ErrNoteNotFound
		}
		log.Error(ctx, ErrGettingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGettingNote, err)
	}

	return note, nil
}

// Create сохраняет новую заметку; ID назначает identity-столбец.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note")

	created, err := scanNote(r.db.QueryRow(ctx, queryCreate, note.Title, note.Content))
	if err != nil {
		log.Error(ctx, ErrCreatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatingNote, err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", created.ID))
	return created, nil
}

// Update заменяет заголовок и содержимое существующей заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"), zap.Int64("noteID", note.ID))
	log.Debug(ctx, "updating note")

	updated, err := scanNote(r.db.QueryRow(ctx, queryUpdate, note.Title, note.Content, note.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found")
			return nil, repositories.ErrNoteNotFound
		}
		log.Error(ctx, ErrUpdatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrUpdatingNote, err)
	}

	return updated, nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"), zap.Int64("noteID", id))
	log.Debug(ctx, "deleting note")

	result, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		log.Error(ctx, ErrDeletingNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeletingNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found")
		return repositories.ErrNoteNotFound
	}

	return nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	if err := row.Scan(&note.ID, &note.Title, &note.Content); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &note, nil
}
