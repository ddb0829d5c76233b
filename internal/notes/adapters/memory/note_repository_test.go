package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapp/internal/notes/adapters/memory"
	"notesapp/internal/notes/domain/entities"
	"notesapp/internal/notes/ports/repositories"
)

func TestNoteRepository_Scenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	groceries, err := repo.Create(ctx, entities.NewNote("Groceries", "Milk, eggs"))
	require.NoError(t, err)
	assert.Equal(t, &entities.Note{ID: 1, Title: "Groceries", Content: "Milk, eggs"}, groceries)

	todo, err := repo.Create(ctx, entities.NewNote("Todo", ""))
	require.NoError(t, err)
	assert.Equal(t, &entities.Note{ID: 2, Title: "Todo", Content: ""}, todo)

	updated, err := repo.Update(ctx, &entities.Note{ID: 1, Title: "Groceries", Content: "Milk, eggs, bread"})
	require.NoError(t, err)
	assert.Equal(t, "Milk, eggs, bread", updated.Content)

	require.NoError(t, repo.Delete(ctx, 2))

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1), notes[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, 2), repositories.ErrNoteNotFound)
}

func TestNoteRepository_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	first, err := repo.Create(ctx, entities.NewNote("a", ""))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first.ID))

	second, err := repo.Create(ctx, entities.NewNote("b", ""))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestNoteRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repositories.ErrNoteNotFound)

	_, err = repo.Update(ctx, &entities.Note{ID: 42, Title: "x"})
	assert.ErrorIs(t, err, repositories.ErrNoteNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 42), repositories.ErrNoteNotFound)
}

func TestNoteRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	created, err := repo.Create(ctx, entities.NewNote("original", ""))
	require.NoError(t, err)
	created.Title = "mutated"

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Title)
}

func TestNoteRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNoteRepository()

	const workers = 50
	ids := make(chan int64, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			note, err := repo.Create(ctx, entities.NewNote("concurrent", ""))
			if err == nil {
				ids <- note.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers)
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers)

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, workers)
	for i := 1; i < len(notes); i++ {
		assert.Less(t, notes[i-1].ID, notes[i].ID)
	}
}
