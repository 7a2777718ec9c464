package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quadsolver/internal/api"
	"quadsolver/internal/auth"
	"quadsolver/internal/config"
	"quadsolver/internal/database"
	"quadsolver/internal/grpc"
	"quadsolver/internal/logger"
	"quadsolver/internal/orchestrator"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	store, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("не удалось открыть базу данных", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	taskManager := orchestrator.NewTaskManager(store, orchestrator.DefaultLeaseTimeout)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenExpiration)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grpcServer := grpc.NewGRPCServer(taskManager)
	go func() {
		if err := grpc.StartServer(":"+cfg.OrchestratorGRPCPort, grpcServer); err != nil {
			slog.Error("ошибка gRPC сервера", "port", cfg.OrchestratorGRPCPort, "error", err)
			stop()
		}
	}()

	router := orchestrator.NewRouter(
		orchestrator.NewHandler(taskManager),
		api.NewAuthHandler(store, tokens),
		tokens,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.OrchestratorHTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP сервер запущен", "port", cfg.OrchestratorHTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ошибка HTTP сервера", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	queued, leased := taskManager.Pending()
	slog.Info("остановка оркестратора", "queued", queued, "leased", leased)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("ошибка остановки HTTP сервера", "error", err)
	}
	grpcServer.GracefulStop()
}
