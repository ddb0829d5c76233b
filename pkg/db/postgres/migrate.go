package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres:// для migrate
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник file:// для migrate
	"go.uber.org/zap"

	"notesapp/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrRollbackMigrations      = "failed to roll back migrations"
)

// Константы для сообщений logger.
const (
	LogMigrationsApplied    = "database migrations successfully applied"
	LogMigrationsRolledBack = "database migrations rolled back"
	LogNoMigrationChange    = "database schema is up to date"
)

// Direction задает направление миграций.
type Direction int

// Направления миграций.
const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// MigrateDSN применяет все миграции вверх из указанного пути.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	return Migrate(ctx, dsn, migrationsPath, Up)
}

// Migrate применяет миграции в указанном направлении.
// Down откатывает одну последнюю миграцию.
func Migrate(ctx context.Context, dsn, migrationsPath string, direction Direction) error {
	log := logger.Log(ctx).With(zap.String("path", migrationsPath))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance",
				zap.NamedError("source_error", srcErr),
				zap.NamedError("database_error", dbErr))
		}
	}()

	switch direction {
	case Down:
		err = m.Steps(-1)
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Error(ctx, ErrRollbackMigrations, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrRollbackMigrations, err)
		}
		log.Info(ctx, LogMigrationsRolledBack)
	default:
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info(ctx, LogNoMigrationChange)
			return nil
		}
		if err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
		}
		log.Info(ctx, LogMigrationsApplied)
	}

	return nil
}
