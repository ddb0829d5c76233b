package config

import "fmt"

// Драйверы хранилища заметок.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// StorageConfig выбирает реализацию хранилища.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"NOTES_STORAGE_DRIVER" env-default:"postgres"`
}

// Validate проверяет, что драйвер поддерживается.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
		return nil
	default:
		return fmt.Errorf("%s: %q", ErrUnknownDriver, s.Driver)
	}
}

// SQLiteConfig содержит путь к файлу базы SQLite.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"NOTES_SQLITE_PATH" env-default:"notes.db"`
}

// MigrationsConfig содержит каталог с миграциями Postgres.
type MigrationsConfig struct {
	Dir string `yaml:"dir" env:"NOTES_MIGRATIONS_DIR" env-default:"migrations/notes"`
}
