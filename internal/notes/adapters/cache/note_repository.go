package cache

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"notesapp/internal/notes/domain/entities"
	"notesapp/internal/notes/ports/cache"
	"notesapp/internal/notes/ports/repositories"
	"notesapp/internal/notes/resilience"
	"notesapp/pkg/logger"
)

// Ключи кэша. Список хранится под ключом с номером поколения,
// поколение увеличивается после каждой успешной записи.
const (
	GenerationKey = "notes:generation"
	ListKeyPrefix = "notes:list:"
)

// Константы для логирования.
const (
	LogCacheHit         = "notes list served from cache"
	LogCacheMiss        = "notes list cache miss"
	LogCacheUnavailable = "notes cache unavailable, using store"
	LogCacheDecode      = "failed to decode cached notes list"
	LogCacheInvalidate  = "failed to invalidate notes list cache"
	LogCacheBypass      = "notes list cache is stale, reading from store"
	LogCacheRecovered   = "notes list cache invalidation recovered"
)

// NoteRepository оборачивает хранилище и кэширует результат List.
// Ошибки кэша никогда не приводят к ошибке запроса.
//
// Если после записи поколение не удалось увеличить, декоратор помечает кэш
// устаревшим и читает список из хранилища, пока инвалидация не пройдет.
type NoteRepository struct {
	next    repositories.NoteRepository
	cache   cache.Cache
	breaker *resilience.CircuitBreaker
	ttl     time.Duration
	stale   atomic.Bool
}

var _ repositories.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository создает кэширующий декоратор над next.
func NewNoteRepository(
	next repositories.NoteRepository,
	c cache.Cache,
	breaker *resilience.CircuitBreaker,
	ttl time.Duration,
) *NoteRepository {
	return &NoteRepository{
		next:    next,
		cache:   c,
		breaker: breaker,
		ttl:     ttl,
	}
}

// List возвращает список из кэша текущего поколения или из хранилища.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "cache.NoteRepository.List"))

	if r.stale.Load() && !r.retryInvalidate(ctx) {
		log.Warn(ctx, LogCacheBypass)
		return r.next.List(ctx) //nolint:wrapcheck
	}

	generation, cacheable := r.generation(ctx)
	key := ListKeyPrefix + strconv.FormatInt(generation, 10)

	if cacheable {
		if notes, ok := r.lookup(ctx, key); ok {
			log.Debug(ctx, LogCacheHit, zap.Int64("generation", generation))
			return notes, nil
		}
		log.Debug(ctx, LogCacheMiss, zap.Int64("generation", generation))
	}

	notes, err := r.next.List(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if cacheable {
		r.store(ctx, key, notes)
	}

	return notes, nil
}

// GetByID передает запрос в хранилище без кэширования.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	return r.next.GetByID(ctx, id) //nolint:wrapcheck
}

// Create сохраняет заметку и сбрасывает кэш списка.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	created, err := r.next.Create(ctx, note)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	r.invalidate(ctx)
	return created, nil
}

// Update обновляет заметку и сбрасывает кэш списка.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	updated, err := r.next.Update(ctx, note)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	r.invalidate(ctx)
	return updated, nil
}

// Delete удаляет заметку и сбрасывает кэш списка.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err //nolint:wrapcheck
	}
	r.invalidate(ctx)
	return nil
}

// generation читает текущее поколение; false означает, что кэш использовать нельзя.
func (r *NoteRepository) generation(ctx context.Context) (int64, bool) {
	var raw string
	var found bool
	err := r.breaker.Execute(ctx, func() error {
		var err error
		raw, found, err = r.cache.Get(ctx, GenerationKey)
		return err
	})
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheUnavailable, zap.Error(err))
		return 0, false
	}
	if !found {
		return 0, true
	}

	generation, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheUnavailable, zap.Error(err))
		return 0, false
	}
	return generation, true
}

func (r *NoteRepository) lookup(ctx context.Context, key string) ([]*entities.Note, bool) {
	var raw string
	var found bool
	err := r.breaker.Execute(ctx, func() error {
		var err error
		raw, found, err = r.cache.Get(ctx, key)
		return err
	})
	if err != nil || !found {
		return nil, false
	}

	notes := make([]*entities.Note, 0)
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheDecode, zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return notes, true
}

func (r *NoteRepository) store(ctx context.Context, key string, notes []*entities.Note) {
	payload, err := json.Marshal(notes)
	if err != nil {
		return
	}
	if err := r.breaker.Execute(ctx, func() error {
		return r.cache.Set(ctx, key, string(payload), r.ttl)
	}); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheUnavailable, zap.Error(err))
	}
}

// invalidate переводит кэш на новое поколение; старые ключи истекают по TTL.
func (r *NoteRepository) invalidate(ctx context.Context) {
	if err := r.bump(ctx); err != nil {
		r.stale.Store(true)
		logger.Log(ctx).Error(ctx, LogCacheInvalidate, zap.Error(err))
	}
}

// retryInvalidate повторяет пропущенную инвалидацию. Флаг снимается только после
// успешного увеличения поколения.
func (r *NoteRepository) retryInvalidate(ctx context.Context) bool {
	if err := r.bump(ctx); err != nil {
		return false
	}
	r.stale.Store(false)
	logger.Log(ctx).Info(ctx, LogCacheRecovered)
	return true
}

func (r *NoteRepository) bump(ctx context.Context) error {
	return r.breaker.Execute(ctx, func() error {
		_, err := r.cache.Incr(ctx, GenerationKey)
		return err
	})
}
