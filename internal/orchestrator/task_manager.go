package orchestrator

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"quadsolver/internal/database"
	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrLeaseLost возвращается агенту, чья задача после истечения
	// срока была выдана другому агенту
	ErrLeaseLost = errors.New("task is leased by another agent")
)

// DefaultLeaseTimeout это время, через которое задача, выданная агенту
// и не вернувшаяся с результатом, снова попадает в очередь
const DefaultLeaseTimeout = 30 * time.Second

// EquationSaver сохраняет уравнения в постоянное хранилище
type EquationSaver interface {
	SaveEquation(eq *models.Equation, userID int) error
}

type lease struct {
	agentID string
	since   time.Time
}

// TaskManager хранит очередь уравнений, ожидающих решения агентами.
// Идентификатор задачи совпадает с идентификатором уравнения.
type TaskManager struct {
	equations    map[string]models.Equation
	userIDs      map[string]int
	order        []string
	queue        []string
	leased       map[string]lease
	saver        EquationSaver
	leaseTimeout time.Duration
	now          func() time.Time
	mu           sync.RWMutex
}

// NewTaskManager создает новый менеджер задач. saver может быть nil,
// тогда уравнения живут только в памяти.
func NewTaskManager(saver EquationSaver, leaseTimeout time.Duration) *TaskManager {
	if leaseTimeout <= 0 {
		leaseTimeout = DefaultLeaseTimeout
	}
	return &TaskManager{
		equations:    make(map[string]models.Equation),
		userIDs:      make(map[string]int),
		leased:       make(map[string]lease),
		saver:        saver,
		leaseTimeout: leaseTimeout,
		now:          time.Now,
	}
}

// CreateEquation ставит уравнение в очередь и возвращает его идентификатор
func (tm *TaskManager) CreateEquation(a, b, c float64, userID int) (string, error) {
	if a == 0 {
		return "", quadratic.ErrNotQuadratic
	}

	eq := models.Equation{
		ID:        uuid.New().String(),
		A:         a,
		B:         b,
		C:         c,
		Status:    models.StatusProcessing,
		CreatedAt: tm.now().Format(database.TimeLayout),
	}

	tm.mu.Lock()
	tm.equations[eq.ID] = eq
	tm.userIDs[eq.ID] = userID
	tm.order = append(tm.order, eq.ID)
	tm.queue = append(tm.queue, eq.ID)
	tm.mu.Unlock()

	tm.save(eq, userID)
	slog.Info("уравнение поставлено в очередь", "id", eq.ID, "a", a, "b", b, "c", c)
	return eq.ID, nil
}

// GetNextTask выдает агенту первую задачу из очереди
func (tm *TaskManager) GetNextTask(agentID string) (models.Task, bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.requeueExpired()
	if len(tm.queue) == 0 {
		return models.Task{}, false
	}

	id := tm.queue[0]
	tm.queue = tm.queue[1:]
	tm.leased[id] = lease{agentID: agentID, since: tm.now()}

	eq := tm.equations[id]
	slog.Debug("задача выдана агенту", "task_id", id, "agent_id", agentID)
	return models.Task{ID: id, A: eq.A, B: eq.B, C: eq.C}, true
}

// requeueExpired возвращает в очередь задачи агентов, которые не ответили вовремя,
// в порядке создания уравнений. Вызывается под tm.mu.
func (tm *TaskManager) requeueExpired() {
	if len(tm.leased) == 0 {
		return
	}
	now := tm.now()
	for _, id := range tm.order {
		l, ok := tm.leased[id]
		if !ok || now.Sub(l.since) < tm.leaseTimeout {
			continue
		}
		slog.Warn("агент не вернул результат, задача возвращена в очередь",
			"task_id", id, "agent_id", l.agentID)
		delete(tm.leased, id)
		tm.queue = append(tm.queue, id)
	}
}

// SubmitTaskResult обрабатывает результат, присланный агентом
func (tm *TaskManager) SubmitTaskResult(result models.TaskResult) error {
	tm.mu.Lock()
	l, ok := tm.leased[result.ID]
	if !ok {
		tm.mu.Unlock()
		return fmt.Errorf("%s: %w", result.ID, ErrTaskNotFound)
	}
	if l.agentID != result.AgentID {
		tm.mu.Unlock()
		return fmt.Errorf("%s from %q: %w", result.ID, result.AgentID, ErrLeaseLost)
	}
	delete(tm.leased, result.ID)

	eq := tm.equations[result.ID]
	switch {
	case result.ErrorKind != "":
		eq.Status = models.StatusError
		eq.ErrorKind = result.ErrorKind
	case result.Roots != nil:
		pair := *result.Roots
		eq.Status = models.StatusCompleted
		eq.Roots = &pair
		eq.Display = quadratic.FormatRoots(pair)
	default:
		eq.Status = models.StatusError
		eq.ErrorKind = quadratic.KindInternal
	}
	tm.equations[result.ID] = eq
	userID := tm.userIDs[result.ID]
	tm.mu.Unlock()

	tm.save(eq, userID)
	slog.Info("получен результат задачи", "task_id", eq.ID, "status", eq.Status, "error_kind", eq.ErrorKind)
	return nil
}

func (tm *TaskManager) save(eq models.Equation, userID int) {
	if tm.saver == nil {
		return
	}
	if err := tm.saver.SaveEquation(&eq, userID); err != nil {
		slog.Error("ошибка сохранения уравнения", "id", eq.ID, "error", err)
	}
}

// GetEquation возвращает уравнение, только если оно принадлежит пользователю
func (tm *TaskManager) GetEquation(id string, userID int) (models.Equation, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	eq, exists := tm.equations[id]
	if !exists || tm.userIDs[id] != userID {
		return models.Equation{}, false
	}
	return eq, true
}

// GetUserEquations возвращает уравнения пользователя в порядке создания
func (tm *TaskManager) GetUserEquations(userID int) []models.Equation {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	result := []models.Equation{}
	for _, id := range tm.order {
		if tm.userIDs[id] == userID {
			result = append(result, tm.equations[id])
		}
	}
	return result
}

// Pending возвращает число задач в очереди и выданных агентам
func (tm *TaskManager) Pending() (queued, leased int) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.queue), len(tm.leased)
}
