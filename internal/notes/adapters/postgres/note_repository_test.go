package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapp/internal/notes/adapters/postgres"
	"notesapp/internal/notes/domain/entities"
	"notesapp/internal/notes/ports/repositories"
	"notesapp/pkg/logger"
)

var (
	queryList   = regexp.QuoteMeta(`SELECT id, title, content FROM notes ORDER BY id`)
	queryGet    = regexp.QuoteMeta(`SELECT id, title, content FROM notes WHERE id = $1`)
	queryCreate = regexp.QuoteMeta(`INSERT INTO notes (title, content) VALUES ($1, $2) RETURNING id, title, content`)
	queryUpdate = regexp.QuoteMeta(`UPDATE notes SET title = $1, content = $2, updated_at = now() WHERE id = $3 RETURNING id, title, content`)
	queryDelete = regexp.QuoteMeta(`DELETE FROM notes WHERE id = $1`)
)

var errDatabaseConnection = errors.New("database connection failed")

var noteColumns = []string{"id", "title", "content"}

func testContext() context.Context {
	return logger.NewContext(context.Background(), logger.NewNop())
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock
}

func TestNewNoteRepository(t *testing.T) {
	repo := postgres.NewNoteRepository(newMock(t))

	require.NotNil(t, repo)
	assert.Implements(t, (*repositories.NoteRepository)(nil), repo)
}

func TestNoteRepository_List(t *testing.T) {
	ctx := testContext()

	t.Run("returns notes in id order", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryList).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(int64(1), "Groceries", "Milk, eggs").
				AddRow(int64(2), "Todo", ""))

		notes, err := postgres.NewNoteRepository(mock).List(ctx)

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, &entities.Note{ID: 1, Title: "Groceries", Content: "Milk, eggs"}, notes[0])
		assert.Equal(t, &entities.Note{ID: 2, Title: "Todo", Content: ""}, notes[1])
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryList).WillReturnRows(pgxmock.NewRows(noteColumns))

		notes, err := postgres.NewNoteRepository(mock).List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryList).WillReturnError(errDatabaseConnection)

		notes, err := postgres.NewNoteRepository(mock).List(ctx)

		require.Error(t, err)
		assert.Nil(t, notes)
		assert.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrListingNotes)
	})

	t.Run("row iteration error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryList).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(int64(1), "Groceries", "Milk").
				RowError(0, errDatabaseConnection))

		notes, err := postgres.NewNoteRepository(mock).List(ctx)

		require.Error(t, err)
		assert.Nil(t, notes)
	})
}

func TestNoteRepository_GetByID(t *testing.T) {
	ctx := testContext()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryGet).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(int64(7), "Title", "Body"))

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, &entities.Note{ID: 7, Title: "Title", Content: "Body"}, note)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryGet).WithArgs(int64(7)).WillReturnError(pgx.ErrNoRows)

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, 7)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, repositories.ErrNoteNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryGet).WithArgs(int64(7)).WillReturnError(errDatabaseConnection)

		note, err := postgres.NewNoteRepository(mock).GetByID(ctx, 7)

		assert.Nil(t, note)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repositories.ErrNoteNotFound)
		assert.Contains(t, err.Error(), postgres.ErrGettingNote)
	})
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext()

	t.Run("successful note creation", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryCreate).
			WithArgs("Groceries", "Milk, eggs").
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(int64(1), "Groceries", "Milk, eggs"))

		note, err := postgres.NewNoteRepository(mock).Create(ctx, entities.NewNote("Groceries", "Milk, eggs"))

		require.NoError(t, err)
		assert.Equal(t, &entities.Note{ID: 1, Title: "Groceries", Content: "Milk, eggs"}, note)
	})

	t.Run("note with empty content", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryCreate).
			WithArgs("Todo", "").
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(int64(2), "Todo", ""))

		note, err := postgres.NewNoteRepository(mock).Create(ctx, entities.NewNote("Todo", ""))

		require.NoError(t, err)
		assert.Equal(t, int64(2), note.ID)
		assert.Empty(t, note.Content)
	})

	t.Run("database connection error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryCreate).
			WithArgs("Groceries", "Milk").
			WillReturnError(errDatabaseConnection)

		note, err := postgres.NewNoteRepository(mock).Create(ctx, entities.NewNote("Groceries", "Milk"))

		assert.Nil(t, note)
		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrCreatingNote)
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext()
	input := &entities.Note{ID: 1, Title: "Groceries", Content: "Milk, eggs, bread"}

	t.Run("successful note update", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryUpdate).
			WithArgs(input.Title, input.Content, input.ID).
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(input.ID, input.Title, input.Content))

		note, err := postgres.NewNoteRepository(mock).Update(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, input, note)
	})

	t.Run("note not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryUpdate).
			WithArgs(input.Title, input.Content, input.ID).
			WillReturnError(pgx.ErrNoRows)

		note, err := postgres.NewNoteRepository(mock).Update(ctx, input)

		assert.Nil(t, note)
		assert.ErrorIs(t, err, repositories.ErrNoteNotFound)
	})

	t.Run("database error during update", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(queryUpdate).
			WithArgs(input.Title, input.Content, input.ID).
			WillReturnError(errDatabaseConnection)

		note, err := postgres.NewNoteRepository(mock).Update(ctx, input)

		assert.Nil(t, note)
		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrUpdatingNote)
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext()

	t.Run("successful note deletion", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(queryDelete).
			WithArgs(int64(2)).
			WillReturnResult(pgconn.NewCommandTag("DELETE 1"))

		err := postgres.NewNoteRepository(mock).Delete(ctx, 2)

		require.NoError(t, err)
	})

	t.Run("note not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(queryDelete).
			WithArgs(int64(2)).
			WillReturnResult(pgconn.NewCommandTag("DELETE 0"))

		err := postgres.NewNoteRepository(mock).Delete(ctx, 2)

		assert.ErrorIs(t, err, repositories.ErrNoteNotFound)
	})

	t.Run("database error during deletion", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(queryDelete).
			WithArgs(int64(2)).
			WillReturnError(errDatabaseConnection)

		err := postgres.NewNoteRepository(mock).Delete(ctx, 2)

		require.Error(t, err)
		assert.NotErrorIs(t, err, repositories.ErrNoteNotFound)
		assert.Contains(t, err.Error(), postgres.ErrDeletingNote)
	})
}
