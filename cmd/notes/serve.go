package main

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	notesgrpc "notesapp/internal/notes/adapters/grpc"
	notehttp "notesapp/internal/notes/adapters/http"
	"notesapp/internal/notes/app"
	"notesapp/pkg/logger"
	"notesapp/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogStoppingGRPC        = "stopping gRPC server"
	ErrStartHTTP           = "HTTP server failed"
	ErrStartGRPC           = "failed to start gRPC server"
)

var errServeFailed = errors.New("notes service stopped with an error")

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notes HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context(), depsFrom(cmd.Context()))
	},
}

func serve(parent context.Context, rt *deps) error {
	cfg, log := rt.cfg, rt.log

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrInitStore, zap.Error(err))
		return err
	}

	noteUseCase := app.NewNoteUseCase(st.repo)

	application := notehttp.NewApp(cfg.HTTP)
	notehttp.SetupRouter(application, log, noteUseCase, cfg.RateLimit)

	var failed atomic.Bool
	listenErr := make(chan error, 1)
	notehttp.Listen(ctx, application, cfg.HTTP.GetAddress(), listenErr)
	go func() {
		select {
		case err := <-listenErr:
			log.Error(ctx, ErrStartHTTP, zap.Error(err))
			failed.Store(true)
			cancel()
		case <-ctx.Done():
		}
	}()

	hooks := []shutdown.Hook{
		func(ctx context.Context) error {
			// Хранилище закрывается только после того, как HTTP перестал принимать запросы.
			return errors.Join(notehttp.Shutdown(ctx, application), st.Close(ctx))
		},
	}

	if cfg.GRPC.Enabled {
		grpcServer := notesgrpc.New(&cfg.GRPC)
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			failed.Store(true)
			cancel()
		} else {
			hooks = append(hooks, func(ctx context.Context) error {
				logger.Log(ctx).Info(ctx, LogStoppingGRPC)
				grpcServer.Stop(ctx)
				return nil
			})
		}
	}

	log.Info(ctx, LogServiceStarted,
		zap.String("address", cfg.HTTP.GetAddress()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	shutdownErr := shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

	log.Info(ctx, LogServiceShutdownDone)

	if failed.Load() {
		return errors.Join(errServeFailed, shutdownErr)
	}
	return shutdownErr
}
