package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quadsolver/internal/auth"
	"quadsolver/internal/database"
	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

// EquationStore это часть хранилища, в которую пишется история решений
type EquationStore interface {
	SaveEquation(eq *models.Equation, userID int) error
	GetEquations(userID int) ([]models.Equation, error)
	GetEquation(id string, userID int) (*models.Equation, error)
}

type SolverHandler struct {
	store  EquationStore
	solver *quadratic.Solver
}

func NewSolverHandler(store EquationStore, solver *quadratic.Solver) *SolverHandler {
	if solver == nil {
		solver = quadratic.NewSolver()
	}
	return &SolverHandler{store: store, solver: solver}
}

// Solve проверяет коэффициенты, решает уравнение и сохраняет его в историю
func (h *SolverHandler) Solve(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	a, b, c, err := quadratic.ValidateCoefficients(req.A, req.B, req.C)
	if err != nil {
		SendDomainError(w, err)
		return
	}

	eq := &models.Equation{
		ID:     uuid.New().String(),
		A:      a,
		B:      b,
		C:      c,
		Status: models.StatusCompleted,
	}

	pair, solveErr := h.solver.Solve(a, b, c)
	if solveErr != nil {
		eq.Status = models.StatusError
		eq.ErrorKind = quadratic.ErrorKind(solveErr)
	} else {
		eq.Roots = &pair
		eq.Display = quadratic.FormatRoots(pair)
	}

	if err := h.store.SaveEquation(eq, userID); err != nil {
		slog.Error("ошибка сохранения уравнения", "id", eq.ID, "error", err)
	}

	if solveErr != nil {
		slog.Info("уравнение не решено", "id", eq.ID, "a", a, "b", b, "c", c, "kind", eq.ErrorKind)
		SendDomainError(w, solveErr)
		return
	}

	slog.Info("уравнение решено", "id", eq.ID, "a", a, "b", b, "c", c, "kind", pair.Kind())
	SendJSON(w, http.StatusOK, models.SolveResponse{ID: eq.ID, Roots: pair, Display: eq.Display})
}

// Validate проверяет одно значение коэффициента без решения уравнения
func (h *SolverHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	value, err := quadratic.ValidateInput(req.Value)
	if err != nil {
		SendDomainError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, models.ValidateResponse{Value: value})
}

func (h *SolverHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	equations, err := h.store.GetEquations(userID)
	if err != nil {
		slog.Error("ошибка получения истории", "user_id", userID, "error", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}
	if equations == nil {
		equations = []models.Equation{}
	}
	SendJSON(w, http.StatusOK, models.EquationList{Equations: equations})
}

func (h *SolverHandler) HistoryItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	eq, err := h.store.GetEquation(chi.URLParam(r, "id"), userID)
	if err != nil {
		if errors.Is(err, database.ErrEquationNotFound) {
			SendErrorResponse(w, http.StatusNotFound, "Equation not found")
			return
		}
		slog.Error("ошибка получения уравнения", "user_id", userID, "error", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	SendJSON(w, http.StatusOK, eq)
}
