package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	notescache "notesapp/internal/notes/adapters/cache"
	"notesapp/internal/notes/adapters/memory"
	pgrepo "notesapp/internal/notes/adapters/postgres"
	"notesapp/internal/notes/adapters/sqlite"
	"notesapp/internal/notes/config"
	"notesapp/internal/notes/db"
	"notesapp/internal/notes/ports/repositories"
	"notesapp/internal/notes/resilience"
	redisdb "notesapp/pkg/db/redis"
	"notesapp/pkg/logger"
)

// Константы для сообщений хранилища.
const (
	LogInitStore     = "initializing note store"
	LogCacheEnabled  = "notes list cache enabled"
	LogCacheDisabled = "redis unavailable, notes list cache disabled"
	LogClosingStore  = "closing note store"
	ErrInitStore     = "failed to initialize note store"
	cacheBreakerName = "notes-cache"
)

// store объединяет выбранную реализацию хранилища и функции ее закрытия.
type store struct {
	repo    repositories.NoteRepository
	closers []func(context.Context) error
}

// Close закрывает ресурсы в порядке, обратном открытию.
func (s *store) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosingStore)

	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openStore создает хранилище по драйверу из конфигурации и при необходимости
// оборачивает его кэшем списка в Redis.
func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogInitStore, zap.String("driver", cfg.Storage.Driver))

	st := &store{}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		database, err := db.New(ctx, &cfg.Postgres, cfg.Migrations.Dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrInitStore, err)
		}
		st.repo = pgrepo.NewNoteRepository(database.Pool())
		st.closers = append(st.closers, func(ctx context.Context) error {
			database.Close(ctx)
			return nil
		})
	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrInitStore, err)
		}
		st.repo = repo
		st.closers = append(st.closers, func(context.Context) error {
			return repo.Close()
		})
	case config.DriverMemory:
		st.repo = memory.NewNoteRepository()
	default:
		return nil, fmt.Errorf("%s: %s %q", ErrInitStore, config.ErrUnknownDriver, cfg.Storage.Driver)
	}

	if cfg.Redis.Enabled {
		st.withCache(ctx, &cfg.Redis)
	}

	return st, nil
}

// withCache подключает кэш списка; недоступный Redis не мешает запуску.
func (s *store) withCache(ctx context.Context, cfg *config.RedisConfig) {
	log := logger.Log(ctx)

	client, err := redisdb.NewClient(ctx, redisdb.Config{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdle:         cfg.MinIdle,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,
	})
	if err != nil {
		log.Warn(ctx, LogCacheDisabled, zap.String("address", cfg.GetAddress()), zap.Error(err))
		return
	}

	redisCache := notescache.NewRedisCache(client)
	breaker := resilience.NewCircuitBreaker(cacheBreakerName, resilience.DefaultCircuitBreakerConfig())

	s.repo = notescache.NewNoteRepository(s.repo, redisCache, breaker, cfg.ListTTL)
	s.closers = append(s.closers, func(context.Context) error {
		return redisCache.Close()
	})

	log.Info(ctx, LogCacheEnabled, zap.Duration("ttl", cfg.ListTTL))
}
