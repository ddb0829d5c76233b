// Package sqlite provides a gorm-backed SQLite implementation of the note repository.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"notesapp/internal/notes/domain/entities"
	"notesapp/internal/notes/ports/repositories"
	"notesapp/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrOpenDatabase  = "failed to open sqlite database"
	ErrCreateSchema  = "failed to create notes schema"
	ErrListingNotes  = "failed to list notes"
	ErrGettingNote   = "failed to get note"
	ErrCreatingNote  = "failed to create note"
	ErrUpdatingNote  = "failed to update note"
	ErrDeletingNote  = "failed to delete note"
	ErrCloseDatabase = "failed to close sqlite database"
)

// MemoryPath открывает базу в памяти процесса.
const MemoryPath = ":memory:"

// AUTOINCREMENT гарантирует, что ID удаленных заметок не выдаются повторно.
const schema = `CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL CHECK (length(trim(title)) > 0),
	content    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

type noteModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string `gorm:"column:title"`
	Content   string `gorm:"column:content"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (noteModel) TableName() string {
	return "notes"
}

func (m *noteModel) toEntity() *entities.Note {
	return &entities.Note{ID: m.ID, Title: m.Title, Content: m.Content}
}

// NoteRepository реализует repositories.NoteRepository поверх gorm.
type NoteRepository struct {
	db *gorm.DB
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// Open открывает (или создает) базу SQLite и применяет схему.
// SQLite допускает одного писателя, поэтому пул ограничен одним соединением.
func Open(ctx context.Context, path string) (*NoteRepository, error) {
	log := logger.Log(ctx).With(zap.String("path", path))
	log.Info(ctx, "opening sqlite database")

	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		log.Error(ctx, ErrOpenDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpenDatabase, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpenDatabase, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.WithContext(ctx).Exec(schema).Error; err != nil {
		_ = sqlDB.Close()
		log.Error(ctx, ErrCreateSchema, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreateSchema, err)
	}

	return &NoteRepository{db: db}, nil
}

// Close закрывает соединение с базой.
func (r *NoteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCloseDatabase, err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrCloseDatabase, err)
	}
	return nil
}

// Ping проверяет доступность базы.
func (r *NoteRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err //nolint:wrapcheck
	}
	return sqlDB.PingContext(ctx) //nolint:wrapcheck
}

// List возвращает все заметки в порядке возрастания ID.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.List"))

	var models []noteModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		log.Error(ctx, ErrListingNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListingNotes, err)
	}

	notes := make([]*entities.Note, 0, len(models))
	for i := range models {
		notes = append(notes, models[i].toEntity())
	}
	return notes, nil
}

// GetByID возвращает заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.GetByID"), zap.Int64("noteID", id))

	var model noteModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNoteNotFound
		}
		log.Error(ctx, ErrGettingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGettingNote, err)
	}
	return model.toEntity(), nil
}

// Create вставляет заметку; ID назначает SQLite.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.Create"))

	model := noteModel{Title: note.Title, Content: note.Content}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		log.Error(ctx, ErrCreatingNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatingNote, err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", model.ID))
	return model.toEntity(), nil
}

// Update заменяет заголовок и содержимое заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.Update"), zap.Int64("noteID", note.ID))

	result := r.db.WithContext(ctx).
		Model(&noteModel{}).
		Where("id = ?", note.ID).
		Updates(map[string]any{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		log.Error(ctx, ErrUpdatingNote, zap.Error(result.Error))
		return nil, fmt.Errorf("%s: %w", ErrUpdatingNote, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repositories.ErrNoteNotFound
	}

	return &entities.Note{ID: note.ID, Title: note.Title, Content: note.Content}, nil
}

// Delete удаляет заметку по ID.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.NoteRepository.Delete"), zap.Int64("noteID", id))

	result := r.db.WithContext(ctx).Delete(&noteModel{}, id)
	if result.Error != nil {
		log.Error(ctx, ErrDeletingNote, zap.Error(result.Error))
		return fmt.Errorf("%s: %w", ErrDeletingNote, result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNoteNotFound
	}
	return nil
}
