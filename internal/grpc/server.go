package grpc

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"quadsolver/internal/models"
	"quadsolver/internal/orchestrator"
)

// Server раздает агентам задачи из TaskManager
type Server struct {
	taskManager *orchestrator.TaskManager
}

func NewServer(taskManager *orchestrator.TaskManager) *Server {
	return &Server{taskManager: taskManager}
}

// GetTask возвращает задачу агенту или NotFound, если очередь пуста
func (s *Server) GetTask(ctx context.Context, req *models.TaskRequest) (*models.Task, error) {
	task, found := s.taskManager.GetNextTask(req.AgentID)
	if !found {
		return nil, status.Error(codes.NotFound, "нет доступных задач")
	}

	slog.Info("отправка задачи агенту", "agent_id", req.AgentID, "task_id", task.ID,
		"a", task.A, "b", task.B, "c", task.C)
	return &task, nil
}

// SubmitTaskResult принимает результат решения от агента
func (s *Server) SubmitTaskResult(ctx context.Context, result *models.TaskResult) (*models.TaskResultResponse, error) {
	if err := s.taskManager.SubmitTaskResult(*result); err != nil {
		slog.Warn("ошибка при обработке результата задачи", "task_id", result.ID, "error", err)
		return &models.TaskResultResponse{Success: false, ErrorMessage: err.Error()}, nil
	}
	return &models.TaskResultResponse{Success: true}, nil
}

// NewGRPCServer создает gRPC сервер с настройками keepalive
func NewGRPCServer(taskManager *orchestrator.TaskManager) *grpc.Server {
	opts := []grpc.ServerOption{
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     time.Minute,
			MaxConnectionAge:      5 * time.Minute,
			MaxConnectionAgeGrace: 20 * time.Second,
			Time:                  20 * time.Second,
			Timeout:               10 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}

	s := grpc.NewServer(opts...)
	RegisterSolverServer(s, NewServer(taskManager))
	return s
}

// StartServer запускает gRPC сервер и блокируется до его остановки
func StartServer(address string, s *grpc.Server) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	slog.Info("gRPC сервер запущен", "address", address)
	return s.Serve(lis)
}
