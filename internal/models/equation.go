package models

import "quadsolver/internal/quadratic"

// Статусы уравнения
const (
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusError      = "ERROR"
)

// Equation представляет уравнение ax^2 + bx + c = 0 и результат его решения
type Equation struct {
	ID        string              `json:"id"`
	A         float64             `json:"a"`
	B         float64             `json:"b"`
	C         float64             `json:"c"`
	Status    string              `json:"status"`
	Roots     *quadratic.RootPair `json:"roots,omitempty"`
	Display   string              `json:"display,omitempty"`
	ErrorKind string              `json:"error_kind,omitempty"`
	CreatedAt string              `json:"created_at"`
}

type EquationList struct {
	Equations []Equation `json:"equations"`
}

// SolveRequest содержит коэффициенты в текстовом виде, чтобы их можно было
// проверить на потерю точности до преобразования в float64
type SolveRequest struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
}

type SolveResponse struct {
	ID      string             `json:"id"`
	Roots   quadratic.RootPair `json:"roots"`
	Display string             `json:"display"`
}

type ValidateRequest struct {
	Value string `json:"value"`
}

type ValidateResponse struct {
	Value float64 `json:"value"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Task это задача решения одного уравнения, которую выполняет агент
type Task struct {
	ID string  `json:"id"`
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
}

type TaskRequest struct {
	AgentID string `json:"agent_id"`
}

// TaskResult это ответ агента. При ошибке решения Roots пуст, а ErrorKind
// содержит код ошибки
type TaskResult struct {
	ID        string              `json:"id"`
	AgentID   string              `json:"agent_id"`
	Roots     *quadratic.RootPair `json:"roots,omitempty"`
	ErrorKind string              `json:"error_kind,omitempty"`
}

type TaskResultResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}
