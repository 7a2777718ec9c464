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
	"quadsolver/internal/logger"
	"quadsolver/internal/quadratic"
)

func main() {
	envFile := config.LoadEnv()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)
	if envFile != "" {
		slog.Info("загружен файл с переменными окружения", "file", envFile)
	}

	store, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("не удалось открыть базу данных", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenExpiration)
	slog.Info("время жизни токена", "minutes", tokens.ExpirationMinutes())

	router := api.SetupRouter(
		api.NewAuthHandler(store, tokens),
		api.NewSolverHandler(store, quadratic.NewSolver()),
		tokens,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.SolverServicePort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("сервер запущен", "url", "http://localhost:"+cfg.SolverServicePort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ошибка HTTP сервера", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("ошибка остановки сервера", "error", err)
	}
	slog.Info("сервер остановлен")
}
