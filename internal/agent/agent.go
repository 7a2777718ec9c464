package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

const (
	maxRetries   = 3
	retryDelay   = time.Second
	idleInterval = time.Second
)

// TaskClient это то, что агенту нужно от оркестратора
type TaskClient interface {
	GetTask(ctx context.Context, agentID string) (*models.Task, error)
	SubmitTaskResult(ctx context.Context, result models.TaskResult) error
}

type Agent struct {
	client  TaskClient
	workers int
	solver  *quadratic.Solver
	// задержка перед первым повтором, удваивается с каждой попыткой
	retryDelay time.Duration
	idle       time.Duration
}

func New(client TaskClient, workers int) *Agent {
	if workers < 1 {
		workers = 1
	}
	return &Agent{
		client:     client,
		workers:    workers,
		solver:     quadratic.NewSolver(),
		retryDelay: retryDelay,
		idle:       idleInterval,
	}
}

// Run запускает воркеров и ждет их завершения после отмены ctx
func (a *Agent) Run(ctx context.Context) {
	var wg sync.WaitGroup

	slog.Info("агент запущен", "computing_power", a.workers)

	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			agentID := uuid.New().String()
			for ctx.Err() == nil {
				if !a.processTask(ctx, workerID, agentID) {
					sleep(ctx, a.idle)
				}
			}
		}(i)
	}

	wg.Wait()
	slog.Info("агент остановлен")
}

// processTask получает одну задачу, решает ее и отправляет результат.
// Возвращает false, если задачи не было.
func (a *Agent) processTask(ctx context.Context, workerID int, agentID string) bool {
	log := slog.With("worker", workerID, "agent_id", agentID)

	var task *models.Task
	err := a.retry(ctx, func() error {
		var err error
		task, err = a.client.GetTask(ctx, agentID)
		if err != nil {
			log.Warn("ошибка получения задачи", "error", err)
		}
		return err
	})
	if err != nil || task == nil {
		return false
	}

	log.Info("получена задача", "task_id", task.ID, "a", task.A, "b", task.B, "c", task.C)

	result := a.Solve(*task)
	result.AgentID = agentID
	if result.ErrorKind != "" {
		log.Warn("уравнение не решено", "task_id", task.ID, "kind", result.ErrorKind)
	} else {
		log.Info("уравнение решено", "task_id", task.ID,
			"roots", quadratic.FormatRoots(*result.Roots))
	}

	err = a.retry(ctx, func() error {
		err := a.client.SubmitTaskResult(ctx, result)
		if err != nil {
			log.Warn("ошибка отправки результата", "task_id", task.ID, "error", err)
		}
		return err
	})
	if err != nil {
		log.Error("не удалось отправить результат", "task_id", task.ID, "attempts", maxRetries)
	}
	return true
}

// Solve решает уравнение задачи. Ошибка решателя передается
// оркестратору в виде кода.
func (a *Agent) Solve(task models.Task) models.TaskResult {
	pair, err := a.solver.Solve(task.A, task.B, task.C)
	if err != nil {
		return models.TaskResult{ID: task.ID, ErrorKind: quadratic.ErrorKind(err)}
	}
	return models.TaskResult{ID: task.ID, Roots: &pair}
}

// retry повторяет fn с экспоненциальной задержкой
func (a *Agent) retry(ctx context.Context, fn func() error) error {
	delay := a.retryDelay
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == maxRetries-1 || !sleep(ctx, delay) {
			break
		}
		delay *= 2
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
