package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"notesapp/pkg/logger"
)

// Режимы вывода логов.
const (
	LogModeDevelopment = "development"
	LogModeProduction  = "production"
)

// ErrInvalidLogging возвращается при неизвестном уровне или режиме логирования.
const ErrInvalidLogging = "invalid logging configuration"

// LoggingConfig задает уровень и режим логгера сервиса.
// Режим сравнивается без учета регистра.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает окружение логгера для режима.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(strings.TrimSpace(l.Mode), LogModeProduction) {
		return logger.Production
	}
	return logger.Development
}

// Validate отклоняет опечатки в режиме и уровне до создания логгера.
func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Mode)) {
	case LogModeDevelopment, LogModeProduction:
	default:
		return fmt.Errorf("%s: unknown mode %q", ErrInvalidLogging, l.Mode)
	}

	if level := strings.TrimSpace(l.Level); level != "" {
		if _, err := zapcore.ParseLevel(level); err != nil {
			return fmt.Errorf("%s: %w", ErrInvalidLogging, err)
		}
	}
	return nil
}
