package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notesapp/internal/notes/config"
	"notesapp/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

type ctxKey struct{}

// deps хранит то, что подготовлено перед запуском подкоманды.
type deps struct {
	cfg *config.Config
	log *logger.Logger
}

var rootCmd = &cobra.Command{
	Use:           "notes",
	Short:         "Notes service: JSON API for short text notes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		rt, ctx, err := bootstrap(cmd.Context())
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			return err
		}
		cmd.SetContext(context.WithValue(ctx, ctxKey{}, rt))
		return nil
	},
}

// bootstrap поднимает логгер из окружения, читает конфигурацию и
// заменяет логгер на настроенный по конфигурации.
func bootstrap(parent context.Context) (*deps, context.Context, error) {
	if parent == nil {
		parent = context.Background()
	}

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(parent, "")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)

	return &deps{cfg: cfg, log: finalLogger}, logger.NewContext(ctx, finalLogger), nil
}

func depsFrom(ctx context.Context) *deps {
	rt, _ := ctx.Value(ctxKey{}).(*deps)
	return rt
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
