package orchestrator

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"quadsolver/internal/api"
	"quadsolver/internal/auth"
	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

type Handler struct {
	tm *TaskManager
}

func NewHandler(tm *TaskManager) *Handler {
	return &Handler{tm: tm}
}

// CreateEquation принимает уравнение и ставит его в очередь агентам
func (h *Handler) CreateEquation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		api.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, b, c, err := quadratic.ValidateCoefficients(req.A, req.B, req.C)
	if err != nil {
		api.SendDomainError(w, err)
		return
	}

	id, err := h.tm.CreateEquation(a, b, c, userID)
	if err != nil {
		api.SendDomainError(w, err)
		return
	}

	api.SendJSON(w, http.StatusAccepted, map[string]string{
		"id":     id,
		"status": models.StatusProcessing,
	})
}

func (h *Handler) ListEquations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		api.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	api.SendJSON(w, http.StatusOK, models.EquationList{Equations: h.tm.GetUserEquations(userID)})
}

func (h *Handler) GetEquation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		api.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	eq, exists := h.tm.GetEquation(mux.Vars(r)["id"], userID)
	if !exists {
		api.SendErrorResponse(w, http.StatusNotFound, "Equation not found")
		return
	}
	api.SendJSON(w, http.StatusOK, eq)
}

// NewRouter собирает HTTP API оркестратора
func NewRouter(h *Handler, authHandler *api.AuthHandler, tokens *auth.Manager) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/v1/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/token-info", authHandler.TokenInfo).Methods(http.MethodGet)

	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(tokens.Middleware(api.AuthError))
	protected.HandleFunc("/equations", h.CreateEquation).Methods(http.MethodPost)
	protected.HandleFunc("/equations", h.ListEquations).Methods(http.MethodGet)
	protected.HandleFunc("/equations/{id}", h.GetEquation).Methods(http.MethodGet)

	return r
}
