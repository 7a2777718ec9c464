package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"quadsolver/internal/models"
)

const callTimeout = 10 * time.Second

// SolverClient это gRPC клиент агента
type SolverClient struct {
	conn *grpc.ClientConn
}

// NewSolverClient создает клиент. Соединение устанавливается лениво,
// при первом вызове.
func NewSolverClient(serverAddr string, opts ...grpc.DialOption) (*SolverClient, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, opts...)

	conn, err := grpc.Dial(serverAddr, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &SolverClient{conn: conn}, nil
}

func (c *SolverClient) Close() error {
	return c.conn.Close()
}

// GetTask запрашивает задачу у оркестратора. Если задач нет, возвращает nil, nil.
func (c *SolverClient) GetTask(ctx context.Context, agentID string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	task := new(models.Task)
	err := c.conn.Invoke(ctx, getTaskMethod, &models.TaskRequest{AgentID: agentID}, task)
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// SubmitTaskResult отправляет результат решения оркестратору
func (c *SolverClient) SubmitTaskResult(ctx context.Context, result models.TaskResult) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp := new(models.TaskResultResponse)
	if err := c.conn.Invoke(ctx, submitTaskResultMethod, &result, resp); err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.ErrorMessage)
	}
	return nil
}
