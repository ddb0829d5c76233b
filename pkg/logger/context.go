package logger

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrLoggerNotFound - в контексте нет логгера.
var ErrLoggerNotFound = errors.New("logger not found in context")

type loggerKey struct{}

var (
	globalMu sync.RWMutex
	global   *Logger

	// fallback пишет только предупреждения и ошибки, пока логгер не настроен.
	fallback = newFallback()
)

func newFallback() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapLogger, err := cfg.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return &Logger{l: zapLogger.With(zap.String("logger", "fallback"))}
}

// NewContext кладет логгер в контекст.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext извлекает логгер, положенный NewContext.
func FromContext(ctx context.Context) (*Logger, error) {
	if logger := fromContext(ctx); logger != nil {
		return logger, nil
	}
	return nil, ErrLoggerNotFound
}

func fromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey{}).(*Logger)
	return logger
}

// SetGlobalLogger задает логгер для вызовов без логгера в контексте.
// nil возвращает резервный логгер.
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = logger
}

// Log возвращает логгер из контекста, глобальный или резервный.
func Log(ctx context.Context) *Logger {
	if logger := fromContext(ctx); logger != nil {
		return logger
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if global != nil {
		return global
	}
	return fallback
}
