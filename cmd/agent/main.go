package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"quadsolver/internal/agent"
	"quadsolver/internal/config"
	"quadsolver/internal/grpc"
	"quadsolver/internal/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	client, err := grpc.NewSolverClient(cfg.OrchestratorGRPCAddr)
	if err != nil {
		slog.Error("не удалось создать gRPC клиент", "addr", cfg.OrchestratorGRPCAddr, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	slog.Info("агент подключается к gRPC серверу", "addr", cfg.OrchestratorGRPCAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agent.New(client, cfg.ComputingPower).Run(ctx)
}
