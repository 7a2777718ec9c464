package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

type fakeClient struct {
	mu         sync.Mutex
	tasks      []models.Task
	results    []models.TaskResult
	getErrs    int
	submitErrs int
	getCalls   int
}

func (c *fakeClient) GetTask(ctx context.Context, agentID string) (*models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalls++
	if c.getErrs > 0 {
		c.getErrs--
		return nil, errors.New("connection refused")
	}
	if len(c.tasks) == 0 {
		return nil, nil
	}
	task := c.tasks[0]
	c.tasks = c.tasks[1:]
	return &task, nil
}

func (c *fakeClient) SubmitTaskResult(ctx context.Context, result models.TaskResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitErrs > 0 {
		c.submitErrs--
		return errors.New("unavailable")
	}
	c.results = append(c.results, result)
	return nil
}

func newTestAgent(client TaskClient) *Agent {
	a := New(client, 1)
	a.retryDelay = time.Millisecond
	a.idle = time.Millisecond
	return a
}

func TestSolve(t *testing.T) {
	a := newTestAgent(&fakeClient{})

	tests := []struct {
		name     string
		task     models.Task
		wantKind string
		want     *quadratic.RootPair
	}{
		{
			name: "Два действительных корня",
			task: models.Task{ID: "1", A: 1, B: -3, C: 2},
			want: &quadratic.RootPair{X1: quadratic.RealRoot(2), X2: quadratic.RealRoot(1)},
		},
		{
			name: "Комплексные корни",
			task: models.Task{ID: "2", A: 1, B: 0, C: 4},
			want: &quadratic.RootPair{X1: quadratic.ComplexRoot(0, 2), X2: quadratic.ComplexRoot(0, -2)},
		},
		{
			name:     "Переполнение дискриминанта",
			task:     models.Task{ID: "3", A: 1e200, B: 1e200, C: 1e200},
			wantKind: quadratic.KindInsufficientPrecision,
		},
		{
			name:     "Не квадратное",
			task:     models.Task{ID: "4", A: 0, B: 1, C: 1},
			wantKind: quadratic.KindNotQuadratic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Solve(tt.task)
			if got.ID != tt.task.ID {
				t.Errorf("Solve().ID = %q, want %q", got.ID, tt.task.ID)
			}
			if got.ErrorKind != tt.wantKind {
				t.Errorf("Solve().ErrorKind = %q, want %q", got.ErrorKind, tt.wantKind)
			}
			if tt.want == nil {
				if got.Roots != nil {
					t.Errorf("Solve().Roots = %+v, want nil", got.Roots)
				}
				return
			}
			if got.Roots == nil || *got.Roots != *tt.want {
				t.Errorf("Solve().Roots = %+v, want %+v", got.Roots, tt.want)
			}
		})
	}
}

func TestProcessTaskRetries(t *testing.T) {
	client := &fakeClient{
		tasks:      []models.Task{{ID: "1", A: 1, B: -3, C: 2}},
		getErrs:    2,
		submitErrs: 1,
	}
	a := newTestAgent(client)

	if !a.processTask(context.Background(), 0, "agent") {
		t.Fatal("processTask() = false, want true")
	}
	if client.getCalls != 3 {
		t.Errorf("GetTask calls = %d, want 3", client.getCalls)
	}
	if len(client.results) != 1 || client.results[0].ID != "1" || client.results[0].AgentID != "agent" {
		t.Errorf("results = %+v", client.results)
	}
}

func TestProcessTaskGivesUp(t *testing.T) {
	client := &fakeClient{getErrs: maxRetries}
	a := newTestAgent(client)

	if a.processTask(context.Background(), 0, "agent") {
		t.Error("processTask() = true after failed retries")
	}
	if client.getCalls != maxRetries {
		t.Errorf("GetTask calls = %d, want %d", client.getCalls, maxRetries)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	client := &fakeClient{tasks: []models.Task{
		{ID: "1", A: 1, B: 2, C: 1},
		{ID: "2", A: 2, B: 0, C: -8},
	}}
	a := newTestAgent(client)
	a.workers = 2

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for {
		client.mu.Lock()
		n := len(client.results)
		client.mu.Unlock()
		if n == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("задачи не обработаны")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() не завершился после отмены контекста")
	}
}
